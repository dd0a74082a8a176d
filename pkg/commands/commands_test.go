package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/operations"
)

func writeProject(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bento.toml"), []byte(manifest), 0644))
	return root
}

const minimalManifest = `
[app]
name = "TestApp"
entrypoint = "main.py"

[bundle]
data = [
    { source = "assets", dest = "assets" },
    { source = "missing.dat", dest = "." },
]
hidden_imports = ["sqlite3"]
`

func TestAssemble(t *testing.T) {
	root := writeProject(t, minimalManifest)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))

	result, err := Assemble(AssembleOptions{ProjectRoot: root})
	require.NoError(t, err)

	require.Len(t, result.Resolution.Included, 1)
	assert.Equal(t, filepath.Join(root, "assets"), result.Resolution.Included[0].Source)

	require.Len(t, result.Resolution.Missing, 1)
	assert.Equal(t, filepath.Join(root, "missing.dat"), result.Resolution.Missing[0].Source)

	assert.Equal(t, []string{"sqlite3"}, result.Resolution.HiddenImports)
	assert.Equal(t, "TestApp", result.Config.App.Name)
}

func TestAssembleWritesReport(t *testing.T) {
	root := writeProject(t, minimalManifest)
	reportPath := filepath.Join(root, "report.toml")

	_, err := Assemble(AssembleOptions{ProjectRoot: root, ReportPath: reportPath})
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "missing.dat")
}

func TestAssembleMissingManifest(t *testing.T) {
	root := t.TempDir()

	_, err := Assemble(AssembleOptions{ProjectRoot: root})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrManifestInvalid))
}

func TestBuildDryRun(t *testing.T) {
	root := writeProject(t, minimalManifest)

	result, err := Build(context.Background(), BuildOptions{ProjectRoot: root, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "pyinstaller", result.Invocation.Tool)
	assert.Contains(t, result.Invocation.Args, "--name")
	assert.Equal(t, "main.py", result.Invocation.Args[len(result.Invocation.Args)-1])
	assert.Nil(t, result.PostResults, "dry run must not stage anything")
}

func TestBuildUnknownTool(t *testing.T) {
	root := writeProject(t, minimalManifest+`
tool = "bento-no-such-bundler"
`)

	_, err := Build(context.Background(), BuildOptions{ProjectRoot: root})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrBundlerNotFound))
}

func TestPostBuild(t *testing.T) {
	root := writeProject(t, minimalManifest)

	// Simulate the bundler's dist output.
	distBundle := filepath.Join(root, "Build_Tools", "dist", "TestApp")
	require.NoError(t, os.MkdirAll(distBundle, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(distBundle, "TestApp"), []byte("exe"), 0755))

	result, err := PostBuild(PostBuildOptions{ProjectRoot: root})
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)

	assert.DirExists(t, filepath.Join(root, "TestApp"))
	assert.FileExists(t, filepath.Join(root, "TestApp", "TestApp"))
	assert.False(t, result.Launched)

	for _, r := range result.Results {
		assert.NotEqual(t, operations.StatusFailed, r.Status, r.Operation.Label)
	}
}

func TestPostBuildDryRun(t *testing.T) {
	root := writeProject(t, minimalManifest)

	result, err := PostBuild(PostBuildOptions{ProjectRoot: root, DryRun: true})
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(root, "TestApp"))
	for _, r := range result.Results {
		assert.Contains(t, r.Message, "would")
	}
}

func TestInit(t *testing.T) {
	root := t.TempDir()

	path, err := Init(InitOptions{ProjectRoot: root})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "bento.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[app]")

	// A second init must refuse to clobber the manifest.
	_, err = Init(InitOptions{ProjectRoot: root})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrManifestExists))

	_, err = Init(InitOptions{ProjectRoot: root, Force: true})
	require.NoError(t, err)
}
