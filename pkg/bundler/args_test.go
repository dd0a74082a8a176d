package bundler_test

import (
	"strings"
	"testing"

	"github.com/bento-build/bento/pkg/bundler"
	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:       "Edge_TTS_Desktop",
			Entrypoint: "main.py",
			Icon:       "assets/app.ico",
		},
		Bundle: config.BundleConfig{
			Tool:  "pyinstaller",
			Mode:  "onedir",
			Clean: true,
		},
	}
}

func TestBuildInvocation(t *testing.T) {
	res := &manifest.Resolution{
		Included: []manifest.DataEntry{
			{Source: "/project/.env.example", Dest: "."},
			{Source: "/project/certs/cacert.pem", Dest: "certifi"},
		},
		HiddenImports: []string{"edge_tts", "grpc"},
		Excludes:      []string{"tkinter"},
	}

	inv := bundler.BuildInvocation(baseConfig(), res, "/project/Build_Tools")
	require.Equal(t, "pyinstaller", inv.Tool)
	assert.Equal(t, "/project/Build_Tools", inv.Dir)

	joined := strings.Join(inv.Args, " ")
	sep := bundler.DataSeparator()

	assert.Contains(t, joined, "--noconfirm")
	assert.Contains(t, joined, "--clean")
	assert.Contains(t, joined, "--name Edge_TTS_Desktop")
	assert.Contains(t, joined, "--onedir")
	assert.Contains(t, joined, "--noconsole")
	assert.Contains(t, joined, "--icon assets/app.ico")
	assert.Contains(t, joined, "--add-data /project/.env.example"+sep+".")
	assert.Contains(t, joined, "--add-data /project/certs/cacert.pem"+sep+"certifi")
	assert.Contains(t, joined, "--hidden-import edge_tts")
	assert.Contains(t, joined, "--hidden-import grpc")
	assert.Contains(t, joined, "--exclude-module tkinter")

	// Entrypoint is always last
	assert.Equal(t, "main.py", inv.Args[len(inv.Args)-1])
}

func TestBuildInvocation_Options(t *testing.T) {
	t.Run("onefile_console", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Bundle.Mode = "onefile"
		cfg.Bundle.Console = true
		cfg.Bundle.Clean = false
		cfg.App.Icon = ""

		inv := bundler.BuildInvocation(cfg, &manifest.Resolution{}, ".")
		joined := strings.Join(inv.Args, " ")

		assert.Contains(t, joined, "--onefile")
		assert.NotContains(t, joined, "--noconsole")
		assert.NotContains(t, joined, "--clean")
		assert.NotContains(t, joined, "--icon")
	})

	t.Run("confirm_enabled", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Bundle.Confirm = true

		inv := bundler.BuildInvocation(cfg, &manifest.Resolution{}, ".")
		assert.NotContains(t, strings.Join(inv.Args, " "), "--noconfirm")
	})

	t.Run("extra_args_before_entrypoint", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Bundle.ExtraArgs = []string{"--log-level", "WARN"}

		inv := bundler.BuildInvocation(cfg, &manifest.Resolution{}, ".")
		n := len(inv.Args)
		assert.Equal(t, []string{"--log-level", "WARN", "main.py"}, inv.Args[n-3:])
	})
}

func TestBuildInvocation_Deterministic(t *testing.T) {
	res := &manifest.Resolution{
		Included:      []manifest.DataEntry{{Source: "/p/a", Dest: "."}},
		HiddenImports: []string{"grpc"},
	}
	first := bundler.BuildInvocation(baseConfig(), res, ".")
	second := bundler.BuildInvocation(baseConfig(), res, ".")
	assert.Equal(t, first, second)
}
