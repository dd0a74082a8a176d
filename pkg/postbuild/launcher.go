package postbuild

import (
	"os/exec"
	"path/filepath"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/types"
)

// Launcher starts the staged executable after post-build finishes.
type Launcher struct {
	fs types.FS

	// start is swappable for tests; defaults to detached process start.
	start func(path string) error
}

// NewLauncher creates a launcher checking existence through the given
// filesystem.
func NewLauncher(fsys types.FS) *Launcher {
	return &Launcher{
		fs: fsys,
		start: func(path string) error {
			cmd := exec.Command(path)
			cmd.Dir = filepath.Dir(path)
			return cmd.Start()
		},
	}
}

// Launch starts the executable for appName inside finalDir. The process is
// not waited on; bento's job ends once the app is running.
func (l *Launcher) Launch(finalDir, appName string) error {
	logger := logging.GetLogger("postbuild.launcher")

	exePath := filepath.Join(finalDir, ExeName(appName))
	if !types.Exists(l.fs, exePath) {
		return errors.Newf(errors.ErrAppNotFound, "executable not found: %s", exePath)
	}

	logger.Info().Str("path", exePath).Msg("Launching application")
	if err := l.start(exePath); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to launch %s", exePath)
	}
	return nil
}
