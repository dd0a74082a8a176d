// Package paths provides centralized path handling for bento.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bento-build/bento/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot is the primary environment variable for the project location
	EnvProjectRoot = "BENTO_PROJECT_ROOT"

	// EnvBentoDataDir overrides the XDG data directory for bento
	EnvBentoDataDir = "BENTO_DATA_DIR"

	// EnvBentoConfigDir overrides the XDG config directory for bento
	EnvBentoConfigDir = "BENTO_CONFIG_DIR"

	// EnvBentoCacheDir overrides the XDG cache directory for bento
	EnvBentoCacheDir = "BENTO_CACHE_DIR"
)

// Default directories and files
const (
	// ManifestFileName is the name of the packaging manifest file
	ManifestFileName = "bento.toml"

	// BuildToolsDirName is the subdirectory holding build scripts and scratch space
	BuildToolsDirName = "Build_Tools"

	// DistDirName is the directory the external bundler writes its output to
	DistDirName = "dist"

	// ScratchDirName is the bundler's intermediate work directory
	ScratchDirName = "build"

	// LogFileName is the name of the log file
	LogFileName = "bento.log"
)

// Paths provides centralized path management for bento
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ManifestPath() string
	BuildToolsDir() string
	DistDir() string
	ScratchDir() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	projectRoot  string
	xdgData      string
	xdgConfig    string
	xdgCache     string
	xdgState     string
	usedFallback bool
}

// New creates a new Paths instance with the given project root.
// If projectRoot is empty, it is determined from BENTO_PROJECT_ROOT, then
// by searching upward from the working directory for a bento.toml, and
// finally falls back to the working directory itself.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	p.xdgData = dirOverride(EnvBentoDataDir, filepath.Join(xdg.DataHome, "bento"))
	p.xdgConfig = dirOverride(EnvBentoConfigDir, filepath.Join(xdg.ConfigHome, "bento"))
	p.xdgCache = dirOverride(EnvBentoCacheDir, filepath.Join(xdg.CacheHome, "bento"))
	p.xdgState = filepath.Join(xdg.StateHome, "bento")

	return p, nil
}

func (p *paths) ProjectRoot() string { return p.projectRoot }
func (p *paths) UsedFallback() bool  { return p.usedFallback }

func (p *paths) ManifestPath() string {
	return filepath.Join(p.projectRoot, ManifestFileName)
}

func (p *paths) BuildToolsDir() string {
	return filepath.Join(p.projectRoot, BuildToolsDirName)
}

func (p *paths) DistDir() string {
	return filepath.Join(p.BuildToolsDir(), DistDirName)
}

func (p *paths) ScratchDir() string {
	return filepath.Join(p.BuildToolsDir(), ScratchDirName)
}

func (p *paths) DataDir() string   { return p.xdgData }
func (p *paths) ConfigDir() string { return p.xdgConfig }
func (p *paths) CacheDir() string  { return p.xdgCache }
func (p *paths) StateDir() string  { return p.xdgState }

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands ~ and resolves a path relative to the project root.
// Absolute paths are returned unchanged, modulo cleaning.
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(p.projectRoot, path), nil
}

// findProjectRoot determines the project root from the environment, then
// by searching upward from the working directory for a manifest, falling
// back to the working directory itself when neither turns anything up.
func findProjectRoot() (root string, usedFallback bool, err error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "failed to determine working directory")
	}

	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, ManifestFileName)); err == nil {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

func dirOverride(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return expandHome(dir)
	}
	return fallback
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
