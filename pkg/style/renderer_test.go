package style_test

import (
	"errors"
	"testing"

	"github.com/bento-build/bento/pkg/bundler"
	"github.com/bento-build/bento/pkg/manifest"
	"github.com/bento-build/bento/pkg/operations"
	"github.com/bento-build/bento/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() *style.TerminalRenderer {
	return style.NewTerminalRenderer(style.FormatText)
}

func TestRenderResolution_Plain(t *testing.T) {
	res := &manifest.Resolution{
		Included: []manifest.DataEntry{
			{Source: "/project/.env.example", Dest: "."},
		},
		Missing: []manifest.DataEntry{
			{Source: "/project/assets/icon.ico", Dest: "assets"},
		},
		HiddenImports: []string{"grpc"},
		Excludes:      []string{"tkinter"},
	}

	out := plainRenderer().RenderResolution(res)

	assert.Contains(t, out, "[FOUND] /project/.env.example -> .")
	assert.Contains(t, out, "[MISSING] /project/assets/icon.ico")
	assert.Contains(t, out, "grpc")
	assert.Contains(t, out, "tkinter")
	assert.Contains(t, out, "1 included, 1 missing")
}

func TestRenderResolution_Empty(t *testing.T) {
	out := plainRenderer().RenderResolution(&manifest.Resolution{})
	assert.Contains(t, out, "No data entries")
	assert.Contains(t, out, "0 included, 0 missing")
}

func TestRenderResults_Plain(t *testing.T) {
	results := []operations.OperationResult{
		{Status: operations.StatusDone, Message: "Copied .env.example"},
		{Status: operations.StatusSkipped, Message: "settings.json or destination not found"},
		{Status: operations.StatusFailed, Error: errors.New("failed to move bundle")},
	}

	out := plainRenderer().RenderResults(results)

	assert.Contains(t, out, "[OK] Copied .env.example")
	assert.Contains(t, out, "[SKIP] settings.json or destination not found")
	assert.Contains(t, out, "[ERROR] failed to move bundle")
}

func TestRenderResults_Empty(t *testing.T) {
	out := plainRenderer().RenderResults(nil)
	assert.Contains(t, out, "No operations")
}

func TestRenderInvocation_Plain(t *testing.T) {
	inv := bundler.Invocation{
		Tool: "pyinstaller",
		Args: []string{"--noconfirm", "--name", "App", "main.py"},
	}
	out := plainRenderer().RenderInvocation(inv)
	assert.Equal(t, "pyinstaller --noconfirm --name App main.py", out)
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]style.Format{
		"":     style.FormatAuto,
		"auto": style.FormatAuto,
		"term": style.FormatTerminal,
		"text": style.FormatText,
	} {
		got, err := style.ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := style.ParseFormat("xml")
	assert.Error(t, err)
}
