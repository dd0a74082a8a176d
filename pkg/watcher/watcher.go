// Package watcher re-runs manifest resolution when project files change.
// It watches the project tree recursively, skipping build output
// directories, and debounces bursts of filesystem events into a single
// callback.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bento-build/bento/pkg/errors"
	"github.com/bento-build/bento/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event
// before firing; editors tend to produce several events per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a project tree and invokes a callback after changes.
type Watcher struct {
	root     string
	excludes []string
	debounce time.Duration
	onChange func()

	fsw   *fsnotify.Watcher
	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over root. Directory names in excludes are never
// descended into. onChange runs on the watcher's goroutine after the
// debounce window closes.
func New(root string, excludes []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New(errors.ErrInvalidInput, "onChange callback must not be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create filesystem watcher")
	}

	w := &Watcher{
		root:     root,
		excludes: excludes,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
	}

	if err := w.addRecursively(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Watch blocks processing events until ctx is cancelled or the event
// stream closes.
func (w *Watcher) Watch(ctx context.Context) error {
	logger := logging.GetLogger("watcher")
	logger.Info().Str("root", w.root).Msg("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New(errors.ErrInternal, "watcher events channel closed")
			}
			if w.excluded(event.Name) {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("File event")

			// New directories need their own watch
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursively(event.Name); err != nil {
						logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
					}
				}
			}
			w.bump()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New(errors.ErrInternal, "watcher errors channel closed")
			}
			logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsw.Close()
}

func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) addRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to watch %s", path)
		}
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}
	for _, name := range w.excludes {
		if base == name {
			return true
		}
	}
	return false
}
