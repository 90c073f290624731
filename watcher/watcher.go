// Package watcher reruns generation whenever a watched input file
// changes on disk.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Debounce rapid editor write bursts into a single run.
const debouncePeriod = 500 * time.Millisecond

// Watcher watches one input file and invokes a callback after each
// debounced change.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	log  *zap.SugaredLogger
	run  func()

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Watcher for path. run is called from a timer goroutine
// after the debounce period elapses without further changes.
func New(path string, log *zap.SugaredLogger, run func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{path: path, fsw: fsw, log: log, run: run}, nil
}

// Run handles filesystem events until ctx is cancelled. Watch errors
// are logged and never terminate the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				w.log.Debugw("input changed", "file", event.Name, "op", event.Op.String())
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", "error", err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debouncePeriod, w.run)
}
