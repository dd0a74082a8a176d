// Test Type: Unit Test
// Description: Tests for the manifest package - resolution of data entries
// against a filesystem

package manifest_test

import (
	"testing"

	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/manifest"
	"github.com/bento-build/bento/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ExistenceFilter(t *testing.T) {
	env := testutil.NewProjectEnv(t)
	env.WriteFile(".env.example", "API_KEY=")
	env.WriteFile("docs/README.md", "# docs")

	cfg := env.BaseConfig()
	cfg.Bundle.Data = []config.DataEntryConfig{
		{Source: ".env.example", Dest: "."},
		{Source: "docs/README.md", Dest: "docs"},
		{Source: "assets/icon.ico", Dest: "assets"}, // does not exist
	}

	res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
	require.NoError(t, err)

	// An entry is included iff its source exists at resolve time
	require.Len(t, res.Included, 2)
	assert.Equal(t, env.Abs(".env.example"), res.Included[0].Source)
	assert.Equal(t, ".", res.Included[0].Dest)
	assert.Equal(t, env.Abs("docs/README.md"), res.Included[1].Source)

	require.Len(t, res.Missing, 1)
	assert.Equal(t, env.Abs("assets/icon.ico"), res.Missing[0].Source)
}

func TestResolver_Idempotent(t *testing.T) {
	env := testutil.NewProjectEnv(t)
	env.WriteFile("settings.json", "{}")
	env.WriteFile("certs/cacert.pem", "PEM")

	cfg := env.BaseConfig()
	cfg.Bundle.Data = []config.DataEntryConfig{
		{Source: "settings.json", Dest: "."},
		{Source: "missing.txt", Dest: "."},
	}
	cfg.Bundle.CertBundle = "certs/cacert.pem"
	cfg.Bundle.HiddenImports = []string{"grpc", "certifi"}

	resolver := manifest.NewResolver(env.FS)

	first, err := resolver.Resolve(cfg, env.Root)
	require.NoError(t, err)
	second, err := resolver.Resolve(cfg, env.Root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_CertBundleAppendedOnce(t *testing.T) {
	env := testutil.NewProjectEnv(t)
	env.WriteFile("certs/cacert.pem", "PEM")

	t.Run("appended_when_present", func(t *testing.T) {
		cfg := env.BaseConfig()
		cfg.Bundle.CertBundle = "certs/cacert.pem"
		cfg.Bundle.CertDest = "certifi"

		res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
		require.NoError(t, err)

		require.Len(t, res.Included, 1)
		assert.Equal(t, env.Abs("certs/cacert.pem"), res.Included[0].Source)
		assert.Equal(t, "certifi", res.Included[0].Dest)
	})

	t.Run("not_duplicated_when_listed_explicitly", func(t *testing.T) {
		cfg := env.BaseConfig()
		cfg.Bundle.Data = []config.DataEntryConfig{
			{Source: "certs/cacert.pem", Dest: "certifi"},
		}
		cfg.Bundle.CertBundle = "certs/cacert.pem"

		res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
		require.NoError(t, err)

		count := 0
		for _, entry := range res.Included {
			if entry.Source == env.Abs("certs/cacert.pem") {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("skipped_when_absent", func(t *testing.T) {
		cfg := env.BaseConfig()
		cfg.Bundle.CertBundle = "certs/absent.pem"

		res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
		require.NoError(t, err)
		assert.Empty(t, res.Included)
	})
}

func TestResolver_DuplicateEntries(t *testing.T) {
	env := testutil.NewProjectEnv(t)
	env.WriteFile("README.md", "#")

	cfg := env.BaseConfig()
	cfg.Bundle.Data = []config.DataEntryConfig{
		{Source: "README.md", Dest: "."},
		{Source: "README.md", Dest: "."},
		{Source: "README.md", Dest: "docs"}, // different dest, kept
	}

	res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
	require.NoError(t, err)
	assert.Len(t, res.Included, 2)
}

func TestResolver_ExclusionPrunesEntries(t *testing.T) {
	env := testutil.NewProjectEnv(t)
	env.WriteFile("app/__pycache__/config.pyc", "bytecode")
	env.WriteFile("app/config.py", "cfg")

	cfg := env.BaseConfig()
	cfg.Bundle.Excludes = []string{"__pycache__", "tkinter"}
	cfg.Bundle.Data = []config.DataEntryConfig{
		{Source: "app/__pycache__/config.pyc", Dest: "app"},
		{Source: "app/config.py", Dest: "app"},
	}

	res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
	require.NoError(t, err)

	require.Len(t, res.Included, 1)
	assert.Equal(t, env.Abs("app/config.py"), res.Included[0].Source)
	assert.Equal(t, []string{"__pycache__", "tkinter"}, res.Excludes)
}

func TestResolver_HiddenImportsDeduped(t *testing.T) {
	env := testutil.NewProjectEnv(t)

	cfg := env.BaseConfig()
	cfg.Bundle.HiddenImports = []string{"grpc", "certifi", "grpc", "edge_tts"}

	res, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
	require.NoError(t, err)
	assert.Equal(t, []string{"grpc", "certifi", "edge_tts"}, res.HiddenImports)
}

func TestResolver_InvalidExclusionPattern(t *testing.T) {
	env := testutil.NewProjectEnv(t)

	cfg := env.BaseConfig()
	cfg.Bundle.Excludes = []string{"[broken"}

	_, err := manifest.NewResolver(env.FS).Resolve(cfg, env.Root)
	assert.Error(t, err)
}
