package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ruakij/shellforge/forge/core"
)

// Watcher reloads the preferences file when it changes on disk, so long
// batch runs pick up edits without a restart.
type Watcher struct {
	path  string
	prefs Preferences

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	onReload func(Preferences)
}

// NewWatcher loads the file once and begins watching its directory (watching
// the directory, not the file, survives editors that replace-on-save).
func NewWatcher(path string, onReload func(Preferences)) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	prefs, err := Load(path)
	if err != nil {
		_ = fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		prefs:    prefs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		onReload: onReload,
	}

	if err := w.add(filepath.Dir(path)); err != nil {
		_ = fsWatch.Close()
		return nil, err
	}

	go w.start()
	return w, nil
}

// Preferences returns the current snapshot.
func (w *Watcher) Preferences() Preferences {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.prefs
}

// add starts watching the named file or directory (non-recursively).
func (w *Watcher) add(name string) error {
	if w.isClosed {
		return errors.New("watcher instance already closed")
	}
	return w.fsnotify.Add(name)
}

func (w *Watcher) start() {
	for {
		select {
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			prefs, err := Load(w.path)
			if err != nil {
				core.LogWarn("failed to reload preferences from %s: %s", w.path, err.Error())
				continue
			}
			w.mutex.Lock()
			w.prefs = prefs
			w.mutex.Unlock()
			core.LogDebug("preferences reloaded from %s", w.path)
			if w.onReload != nil {
				w.onReload(prefs)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("preferences watcher: %s", err.Error())
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
