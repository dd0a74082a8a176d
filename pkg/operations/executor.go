package operations

import (
	"fmt"
	"path/filepath"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/bento-build/bento/pkg/types"
)

// Executor runs staging operations against a filesystem.
//
// Unlike a transactional executor, failures do not abort the run: post-build
// staging mirrors the behavior of a cleanup script, where each step is
// attempted and reported independently.
type Executor struct {
	fs     types.FS
	dryRun bool
}

// NewExecutor creates a new operation executor.
func NewExecutor(fsys types.FS, dryRun bool) *Executor {
	return &Executor{fs: fsys, dryRun: dryRun}
}

// Execute runs the operations in order and returns one result per
// operation. The returned error is non-nil only when at least one
// non-optional operation failed; results always cover the full list.
func (e *Executor) Execute(ops []Operation) ([]OperationResult, error) {
	logger := logging.GetLogger("operations.executor").With().
		Int("operation_count", len(ops)).
		Bool("dry_run", e.dryRun).
		Logger()

	results := make([]OperationResult, 0, len(ops))
	failed := 0

	for _, op := range ops {
		logger.Debug().
			Str("type", operationTypeName(op.Type)).
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Executing operation")

		var result OperationResult
		if e.dryRun {
			result = e.simulate(op)
		} else {
			result = e.executeOne(op)
		}
		results = append(results, result)

		if result.Status == StatusFailed {
			failed++
			logger.Warn().Err(result.Error).Str("label", op.Label).Msg("Operation failed")
		}
	}

	if failed > 0 {
		return results, errors.Newf(errors.ErrOpExecute, "%d of %d operations failed", failed, len(ops))
	}
	return results, nil
}

func (e *Executor) simulate(op Operation) OperationResult {
	return OperationResult{
		Operation: op,
		Status:    StatusSkipped,
		Message:   fmt.Sprintf("would %s %s", operationTypeName(op.Type), op.label()),
	}
}

func (e *Executor) executeOne(op Operation) OperationResult {
	switch op.Type {
	case CopyFile:
		return e.copyFile(op)
	case CopyTree:
		return e.copyTree(op)
	case MoveDir:
		return e.moveDir(op)
	case RemoveTree:
		return e.removeTree(op)
	case WriteFile:
		return e.writeFile(op)
	default:
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Newf(errors.ErrOpInvalid, "unknown operation type %d", op.Type),
		}
	}
}

func (e *Executor) copyFile(op Operation) OperationResult {
	if op.Optional {
		if !types.Exists(e.fs, op.Source) || !types.Exists(e.fs, filepath.Dir(op.Target)) {
			return OperationResult{
				Operation: op,
				Status:    StatusSkipped,
				Message:   fmt.Sprintf("%s or destination not found", op.label()),
			}
		}
	}

	if err := e.doCopyFile(op.Source, op.Target); err != nil {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", op.label()),
		}
	}
	return OperationResult{
		Operation: op,
		Status:    StatusDone,
		Message:   fmt.Sprintf("Copied %s", op.label()),
	}
}

func (e *Executor) doCopyFile(source, target string) error {
	info, err := e.fs.Stat(source)
	if err != nil {
		return err
	}
	data, err := e.fs.ReadFile(source)
	if err != nil {
		return err
	}
	if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return e.fs.WriteFile(target, data, info.Mode().Perm())
}

func (e *Executor) copyTree(op Operation) OperationResult {
	if op.Optional && !types.Exists(e.fs, op.Source) {
		return OperationResult{
			Operation: op,
			Status:    StatusSkipped,
			Message:   fmt.Sprintf("%s not found", op.label()),
		}
	}

	if err := e.doCopyTree(op.Source, op.Target); err != nil {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrFileCopy, "failed to copy tree %s", op.label()),
		}
	}
	return OperationResult{
		Operation: op,
		Status:    StatusDone,
		Message:   fmt.Sprintf("Copied %s", op.label()),
	}
}

func (e *Executor) doCopyTree(source, target string) error {
	entries, err := e.fs.ReadDir(source)
	if err != nil {
		return err
	}
	if err := e.fs.MkdirAll(target, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		src := filepath.Join(source, entry.Name())
		dst := filepath.Join(target, entry.Name())
		if entry.IsDir() {
			if err := e.doCopyTree(src, dst); err != nil {
				return err
			}
			continue
		}
		if err := e.doCopyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) moveDir(op Operation) OperationResult {
	if !types.Exists(e.fs, op.Source) {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Newf(errors.ErrFileNotFound, "%s not found", op.Source),
		}
	}

	// Replace semantics: a previous bundle at the target is removed first.
	if types.Exists(e.fs, op.Target) {
		if err := e.fs.RemoveAll(op.Target); err != nil {
			return OperationResult{
				Operation: op,
				Status:    StatusFailed,
				Error:     errors.Wrapf(err, errors.ErrDirRemove, "failed to remove old %s", op.Target),
			}
		}
	}

	if err := e.fs.MkdirAll(filepath.Dir(op.Target), 0755); err == nil {
		err = e.fs.Rename(op.Source, op.Target)
		if err == nil {
			return OperationResult{
				Operation: op,
				Status:    StatusDone,
				Message:   fmt.Sprintf("Moved to %s", op.Target),
			}
		}
		// Rename can fail across devices; fall back to copy+remove.
		if copyErr := e.doCopyTree(op.Source, op.Target); copyErr == nil {
			if rmErr := e.fs.RemoveAll(op.Source); rmErr == nil {
				return OperationResult{
					Operation: op,
					Status:    StatusDone,
					Message:   fmt.Sprintf("Moved to %s", op.Target),
				}
			}
		}
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrOpExecute, "failed to move %s", op.label()),
		}
	}

	return OperationResult{
		Operation: op,
		Status:    StatusFailed,
		Error:     errors.Newf(errors.ErrDirCreate, "failed to create parent of %s", op.Target),
	}
}

func (e *Executor) removeTree(op Operation) OperationResult {
	if !types.Exists(e.fs, op.Target) {
		return OperationResult{
			Operation: op,
			Status:    StatusSkipped,
			Message:   fmt.Sprintf("%s not present", op.label()),
		}
	}
	if err := e.fs.RemoveAll(op.Target); err != nil {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrDirRemove, "failed to remove %s", op.label()),
		}
	}
	return OperationResult{
		Operation: op,
		Status:    StatusDone,
		Message:   fmt.Sprintf("Removed %s", op.label()),
	}
}

func (e *Executor) writeFile(op Operation) OperationResult {
	if err := e.fs.MkdirAll(filepath.Dir(op.Target), 0755); err != nil {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", op.Target),
		}
	}
	if err := e.fs.WriteFile(op.Target, op.Content, 0644); err != nil {
		return OperationResult{
			Operation: op,
			Status:    StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", op.label()),
		}
	}
	return OperationResult{
		Operation: op,
		Status:    StatusDone,
		Message:   fmt.Sprintf("Wrote %s", op.label()),
	}
}

func (o Operation) label() string {
	if o.Label != "" {
		return o.Label
	}
	if o.Target != "" {
		return o.Target
	}
	return o.Source
}
