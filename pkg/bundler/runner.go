package bundler

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
)

// Runner executes bundler invocations, streaming the tool's output.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a runner writing the tool's output to the given
// writers. Nil writers default to the process's own streams.
func NewRunner(stdout, stderr io.Writer) *Runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Runner{stdout: stdout, stderr: stderr}
}

// Run executes the invocation, blocking until the tool exits or ctx is
// cancelled.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	logger := logging.GetLogger("bundler.runner")

	toolPath, err := exec.LookPath(inv.Tool)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBundlerNotFound, "bundling tool %q not found in PATH", inv.Tool)
	}

	logging.LogCommand(inv.Tool, inv.Args)

	cmd := exec.CommandContext(ctx, toolPath, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), errors.ErrBundlerRun, "bundling cancelled")
		}
		return errors.Wrapf(err, errors.ErrBundlerRun, "%s failed", inv.Tool)
	}

	logger.Info().Str("tool", inv.Tool).Msg("Bundler finished")
	return nil
}
