package testutil

import (
	"path/filepath"
	"testing"

	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/filesystem"
	"github.com/bento-build/bento/pkg/types"
	"github.com/spf13/afero"
)

// ProjectEnv is an in-memory project: a virtual root directory, a types.FS
// over a MemMapFs, and helpers to populate it.
type ProjectEnv struct {
	Root string
	FS   types.FS

	t *testing.T
}

// NewProjectEnv creates a fresh in-memory project environment.
func NewProjectEnv(t *testing.T) *ProjectEnv {
	t.Helper()
	return &ProjectEnv{
		Root: "/project",
		FS:   filesystem.NewAferoFS(afero.NewMemMapFs()),
		t:    t,
	}
}

// WriteFile creates a file under the project root, creating parents.
func (e *ProjectEnv) WriteFile(rel, content string) {
	e.t.Helper()
	path := e.Abs(rel)
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("write %s: %v", path, err)
	}
}

// MkdirAll creates a directory tree under the project root.
func (e *ProjectEnv) MkdirAll(rel string) {
	e.t.Helper()
	if err := e.FS.MkdirAll(e.Abs(rel), 0755); err != nil {
		e.t.Fatalf("mkdir %s: %v", rel, err)
	}
}

// Abs resolves a project-relative path against the virtual root.
func (e *ProjectEnv) Abs(rel string) string {
	return filepath.Join(e.Root, rel)
}

// Exists reports whether a project-relative path is present.
func (e *ProjectEnv) Exists(rel string) bool {
	return types.Exists(e.FS, e.Abs(rel))
}

// ReadFile reads a project-relative file, failing the test on error.
func (e *ProjectEnv) ReadFile(rel string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Abs(rel))
	if err != nil {
		e.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// BaseConfig returns a minimal valid configuration for tests to mutate.
func (e *ProjectEnv) BaseConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:       "TestApp",
			Entrypoint: "main.py",
			Version:    "1.0.0",
		},
		Bundle: config.BundleConfig{
			Tool:     "pyinstaller",
			Mode:     "onedir",
			CertDest: "certifi",
		},
		Post: config.PostConfig{
			FinalDir:    "TestApp",
			InternalDir: "_internal",
		},
	}
}
