// Package watcher provides live reload for the settings file.
//
// A Watcher monitors a single file through fsnotify and invokes a
// reload handler when the file changes. Editors commonly rewrite config
// files via rename (write temp, rename over), so the parent directory is
// watched rather than the file itself.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when starting an already-closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Handler is called after the watched file changes. Errors from the
// handler are delivered to the error handler, if any.
type Handler func(path string) error

// ErrorHandler receives watch and reload errors.
type ErrorHandler func(err error)

// Watcher monitors one file for changes.
type Watcher struct {
	path     string
	handler  Handler
	onError  ErrorHandler
	debounce time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	closed  bool
	done    chan struct{}
	stopped sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long to coalesce bursts of change events before
// invoking the handler. Defaults to 100ms.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithErrorHandler sets the sink for watch and reload errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(w *Watcher) {
		w.onError = h
	}
}

// New creates a watcher for the given file path.
func New(path string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns immediately; change handling runs on
// a background goroutine until Close is called.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.stopped.Add(1)
	go w.loop(fsw, w.done)
	return nil
}

// Close stops watching and waits for the background goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fsw := w.fsw
	done := w.done
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	close(done)
	err := fsw.Close()
	w.stopped.Wait()
	return err
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer w.stopped.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-done:
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.handler(w.path); err != nil {
				w.reportError(err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
