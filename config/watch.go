package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file so that editors which
// save through rename-and-replace keep triggering reloads.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	onLoad  func(Config, error)
	log     *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching path. onLoad runs on the watcher goroutine after
// every reload with either the new config or the load error.
func Watch(path string, onLoad func(Config, error), log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fsw,
		onLoad:  onLoad,
		log:     log,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("config: reloading", "path", w.path, "op", ev.Op.String())
			cfg, err := Load(w.path)
			w.onLoad(cfg, err)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config: watch error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
		<-w.done
	})
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
