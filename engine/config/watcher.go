package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/core"
)

// Watcher reloads a config file whenever it is written and publishes the
// result. Only the most recent valid config is kept; invalid edits are
// logged and skipped.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	updates  chan *Config
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errorx.Decorate(err, "resolving %s", path)
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorx.Decorate(err, "creating config watcher")
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, errorx.Decorate(err, "watching %s", filepath.Dir(abs))
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Updates delivers reloaded configs. It is closed by Close.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Latest returns a pending reload without blocking.
func (w *Watcher) Latest() (*Config, bool) {
	select {
	case cfg, ok := <-w.updates:
		return cfg, ok && cfg != nil
	default:
		return nil, false
	}
}

func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
	return nil
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err)

		case <-w.done:
			w.fsnotify.Close()
			close(w.updates)
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		core.LogWarn("ignoring config change: %s", err)
		return
	}
	// Replace any reload the frame loop has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	core.LogInfo("config reloaded from %s", w.path)
}
