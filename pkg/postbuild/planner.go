// Package postbuild plans and performs the staging that follows a
// successful bundler run: placing the environment template, moving the
// bundle out of the tool's dist directory, clearing scratch directories,
// copying runtime files next to the executable, and optionally launching
// the result.
package postbuild

import (
	"path/filepath"
	"runtime"

	"github.com/bento-build/bento/pkg/appmeta"
	"github.com/bento-build/bento/pkg/config"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/operations"
)

// Layout pins the directories the plan operates on.
type Layout struct {
	// ProjectRoot is the project root directory.
	ProjectRoot string

	// BuildToolsDir is where the bundler ran and left its scratch space.
	BuildToolsDir string
}

// DistBundleDir returns the directory the bundler wrote the app bundle to.
func (l Layout) DistBundleDir(appName string) string {
	return filepath.Join(l.BuildToolsDir, "dist", appName)
}

// FinalDir returns the staged application directory.
func (l Layout) FinalDir(cfg *config.Config) string {
	return filepath.Join(l.ProjectRoot, cfg.Post.FinalDir)
}

// ExeName returns the bundled executable's file name for this platform.
func ExeName(appName string) string {
	if runtime.GOOS == "windows" {
		return appName + ".exe"
	}
	return appName
}

// Plan renders the post-build staging as a list of operations, in the
// order the original workflow performs them: environment template into the
// still-in-dist bundle, move to the final directory, scratch cleanup,
// runtime file copies, and generated metadata last.
func Plan(cfg *config.Config, layout Layout) ([]operations.Operation, error) {
	logger := logging.GetLogger("postbuild.planner")

	distBundle := layout.DistBundleDir(cfg.App.Name)
	finalDir := layout.FinalDir(cfg)

	var ops []operations.Operation

	if cfg.Post.EnvTemplate != "" {
		ops = append(ops, operations.Operation{
			Type:     operations.CopyFile,
			Source:   filepath.Join(layout.ProjectRoot, cfg.Post.EnvTemplate),
			Target:   filepath.Join(distBundle, cfg.Post.InternalDir, filepath.Base(cfg.Post.EnvTemplate)),
			Label:    filepath.Base(cfg.Post.EnvTemplate),
			Optional: true,
		})
	}

	ops = append(ops, operations.Operation{
		Type:   operations.MoveDir,
		Source: distBundle,
		Target: finalDir,
		Label:  cfg.Post.FinalDir,
	})

	for _, dir := range cleanupDirs(cfg, layout, finalDir) {
		ops = append(ops, operations.Operation{
			Type:   operations.RemoveTree,
			Target: dir,
			Label:  filepath.Base(dir) + "/",
		})
	}

	for _, entry := range cfg.Post.Copy {
		label := entry.Label
		if label == "" {
			label = filepath.Base(entry.Source)
		}
		dest := entry.Dest
		if dest == "" {
			dest = filepath.Base(entry.Source)
		}
		ops = append(ops, operations.Operation{
			Type:     operations.CopyFile,
			Source:   filepath.Join(layout.ProjectRoot, entry.Source),
			Target:   filepath.Join(finalDir, dest),
			Label:    label,
			Optional: true,
		})
	}

	if cfg.Post.Manifest {
		content, err := appmeta.Manifest(cfg.App.Name, cfg.App.Version)
		if err != nil {
			return nil, err
		}
		name := appmeta.FileName(ExeName(cfg.App.Name))
		ops = append(ops, operations.Operation{
			Type:    operations.WriteFile,
			Target:  filepath.Join(finalDir, name),
			Label:   name,
			Content: content,
		})
	}

	logger.Debug().Int("operations", len(ops)).Msg("Post-build plan ready")
	return ops, nil
}

// cleanupDirs expands the configured scratch directory names against both
// the build-tools directory and the project root, and always includes the
// bytecode cache inside the staged bundle.
func cleanupDirs(cfg *config.Config, layout Layout, finalDir string) []string {
	names := cfg.Post.Clean
	if len(names) == 0 {
		names = []string{"build", "dist", "__pycache__"}
	}

	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, dup := seen[dir]; dup {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, name := range names {
		add(filepath.Join(layout.BuildToolsDir, name))
		add(filepath.Join(layout.ProjectRoot, name))
	}
	add(filepath.Join(finalDir, "__pycache__"))

	return dirs
}
