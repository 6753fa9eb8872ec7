package gamefw

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// bindingsDebounce is how long the file must stay quiet before it is
// reloaded. Editors often write a file in several steps.
const bindingsDebounce = 100 * time.Millisecond

// BindingsWatcher reloads a bindings file whenever it changes on disk.
// Parsed key maps arrive on Bindings; read or parse failures arrive on
// Errors. Apply received bindings between frames with
// InputConfiguration.ApplyBindings.
type BindingsWatcher struct {
	Bindings chan *Bindings
	Errors   chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchBindings starts watching path. The directory is watched rather than
// the file so renames and atomic saves are picked up.
func WatchBindings(path string) (*BindingsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	bw := &BindingsWatcher{
		Bindings: make(chan *Bindings, 4),
		Errors:   make(chan error, 4),
		path:     abs,
		watcher:  w,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go bw.run()
	return bw, nil
}

// Path returns the absolute path being watched.
func (w *BindingsWatcher) Path() string { return w.path }

// Close stops the watcher. The channels are closed once the watch goroutine
// exits.
func (w *BindingsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Poll applies every key map received since the last call to cfg and
// returns the first error encountered. It never blocks.
func (w *BindingsWatcher) Poll(cfg *InputConfiguration) error {
	for {
		select {
		case b, ok := <-w.Bindings:
			if !ok {
				return nil
			}
			if err := cfg.ApplyBindings(b); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		default:
			return nil
		}
	}
}

func (w *BindingsWatcher) run() {
	defer func() {
		close(w.Bindings)
		close(w.Errors)
		close(w.done)
	}()

	timer := time.NewTimer(bindingsDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
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
			timer.Reset(bindingsDebounce)
		case <-timer.C:
			b, err := LoadBindings(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(b, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *BindingsWatcher) send(b *Bindings, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Bindings <- b:
	case <-w.closeCh:
	}
}
