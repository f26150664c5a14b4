package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed indicates the watcher has been closed.
var ErrWatcherClosed = errors.New("watcher is closed")

// Handler is called with the freshly loaded configuration after the watched
// file changes.
type Handler func(*Config)

// ErrorHandler is called when a reload fails.
type ErrorHandler func(error)

// Watcher monitors a configuration file and reloads it on change.
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string

	handler    Handler
	errHandler ErrorHandler

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts watching the configuration file at path.
// The handler receives each successfully reloaded configuration; a nil
// errHandler silently drops reload failures.
func NewWatcher(path string, handler Handler, errHandler ErrorHandler) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors often replace
	// config files by rename, which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:    fsw,
		path:       absPath,
		handler:    handler,
		errHandler: errHandler,
		closeCh:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// processLoop consumes fsnotify events until the watcher is closed.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.errHandler != nil {
				w.errHandler(err)
			}
		}
	}
}

// relevant reports whether the event concerns the watched file and
// represents new content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

// reload loads the file and dispatches to the handlers.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		if w.errHandler != nil {
			w.errHandler(err)
		}
		return
	}

	if w.handler != nil {
		w.handler(cfg)
	}
}
