package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-event-timeline/internal/util"
)

// DefaultDebounce coalesces bursts of writes into one reload.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher signals when a single file changes. It watches the parent
// directory so editors that replace the file by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
}

// NewFileWatcher starts watching path.
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &FileWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes delivers one value per settled burst of changes.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Run processes events until ctx is done or the watcher is closed.
func (fw *FileWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(fw.changes)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			util.LogDebug("Input file changed", util.F("path", event.Name), util.F("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case fw.changes <- struct{}{}:
			default:
				// a reload is already pending
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
