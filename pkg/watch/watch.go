// Package watch notifies when the layout file changes on disk, so a running
// session can reload a layout written by another process. Events are
// debounced: editors and atomic-save tools produce bursts of writes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one layout file for writes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	events chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	lastEvent time.Time
	debounce  time.Duration
}

// New creates a watcher for the layout file at path.
func New(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  fsw,
		events:   make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Start begins watching. The containing directory is watched rather than
// the file itself, so replace-by-rename saves keep working.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.watchLoop()
	return nil
}

// Events delivers one tick per (debounced) change to the layout file. The
// channel is never closed while the watcher is running; Stop ends delivery.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			select {
			case w.events <- struct{}{}:
			default:
				// Listener hasn't drained the previous tick; coalesce.
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Errors don't stop the watcher.
		}
	}
}
