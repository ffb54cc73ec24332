// Package watcher implements the file system watcher using fsnotify.
// It is a second inbound collaborator for the relay: file activity in
// a watched directory is broadcast as status notifications on its own
// event channel, independent of the network channel.
package watcher

import (
	"context"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"statusbus/internal/observer"
)

// Watcher broadcasts file activity in one directory through a Subject.
type Watcher struct {
	path    string
	subject *observer.Subject

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a watcher for path broadcasting through subject.
func New(path string, subject *observer.Subject) *Watcher {
	return &Watcher{
		path:    path,
		subject: subject,
	}
}

// Start begins watching the directory. Calling Start on a running
// watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(w.path); err != nil {
		_ = fsw.Close()
		w.mu.Unlock()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.watcher = fsw
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true
	w.mu.Unlock()

	log.Debug().Str("path", w.path).Msg("file watcher started")

	go w.eventLoop(watchCtx)
	return nil
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel := w.cancel
	fsw := w.watcher
	done := w.done
	w.mu.Unlock()

	cancel()
	_ = fsw.Close()
	<-done

	log.Debug().Str("path", w.path).Msg("file watcher stopped")
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			status := opStatus(ev.Op)
			if status == "" {
				continue
			}
			log.Trace().
				Str("file", ev.Name).
				Str("status", status).
				Msg("file activity")
			w.subject.Notify(status)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// opStatus maps an fsnotify op to the status value broadcast on the
// file activity channel.
func opStatus(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Write):
		return "modified"
	case op.Has(fsnotify.Remove):
		return "removed"
	case op.Has(fsnotify.Rename):
		return "renamed"
	case op.Has(fsnotify.Chmod):
		return "touched"
	}
	return strings.ToLower(op.String())
}
