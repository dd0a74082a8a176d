package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bento-build/bento/pkg/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnChange(t *testing.T) {
	root := t.TempDir()

	var fired atomic.Int32
	w, err := watcher.New(root, nil, 50*time.Millisecond, func() {
		fired.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	// A burst of writes should debounce into a single callback
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "bento.toml"), []byte("x"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	assert.LessOrEqual(t, fired.Load(), int32(2))
}

func TestWatcher_IgnoresExcludedDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0755))

	var fired atomic.Int32
	w, err := watcher.New(root, []string{"dist", "build"}, 50*time.Millisecond, func() {
		fired.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "out.bin"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(0), fired.Load())
}

func TestWatcher_NilCallback(t *testing.T) {
	_, err := watcher.New(t.TempDir(), nil, 0, nil)
	assert.Error(t, err)
}

func TestWatcher_CancelStops(t *testing.T) {
	w, err := watcher.New(t.TempDir(), nil, 0, func() {})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
