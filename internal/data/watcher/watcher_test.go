package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) (*FileWatcher, context.CancelFunc) {
	t.Helper()
	fw, err := NewFileWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go fw.Run(ctx)
	t.Cleanup(func() {
		cancel()
		fw.Close()
	})
	return fw, cancel
}

func TestFileWatcherSignalsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01 00:00:00\n"), 0644))

	fw, _ := startWatcher(t, path)

	// a burst of writes settles into a single signal
	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("2024-01-01 00:00:01\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	select {
	case <-fw.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01 00:00:00\n"), 0644))

	fw, _ := startWatcher(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0644))

	select {
	case <-fw.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	fw, cancel := startWatcher(t, path)
	cancel()

	select {
	case _, ok := <-fw.Changes():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel not closed")
	}
}

func TestNewFileWatcherMissingDir(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "events.log"), DefaultDebounce)
	assert.Error(t, err)
}
