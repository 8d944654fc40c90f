package engine

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/drfreeman816/VulkanTest/engine/core"
)

// ConfigWatcher announces edits to the config file while the application
// runs. Changes only take effect on the next start, so the watcher logs and
// nothing more.
type ConfigWatcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	stop     sync.Once
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &ConfigWatcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}

	// Watch the directory. Editors tend to replace the file rather than
	// write it in place, which a file watch would miss.
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	go w.start()
	return w, nil
}

func (w *ConfigWatcher) start() {
	for {
		select {
		case e := <-w.fsnotify.Events:
			if filepath.Clean(e.Name) != filepath.Clean(w.path) {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				core.LogInfo("Config %s changed; the new values apply on the next start.", w.path)
			}
		case err := <-w.fsnotify.Errors:
			if err != nil {
				core.LogError(err.Error())
			}
		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *ConfigWatcher) Stop() {
	w.stop.Do(func() {
		close(w.done)
	})
}
