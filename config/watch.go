package config

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/plutofcg/internal/plog"
)

// debounceWindow coalesces the burst of write/chmod events most
// editors emit for a single save, mirroring quasar's watcher.go loop.
const debounceWindow = 200 * time.Millisecond

// Watcher reloads a Loader's config file on every edit and republishes
// the decoded Policy on Changes.
type Watcher struct {
	loader  *Loader
	log     *plog.Logger
	watcher *fsnotify.Watcher

	Changes chan Policy
	done    chan struct{}
}

// NewWatcher wraps an fsnotify.Watcher around loader's resolved config
// file. Callers must call Start after construction and Stop when done.
func NewWatcher(loader *Loader, log *plog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path := loader.ConfigFileUsed()
	if path != "" {
		if err := fw.Add(path); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return &Watcher{
		loader:  loader,
		log:     log,
		watcher: fw,
		Changes: make(chan Policy, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start launches the debounced event loop in its own goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop closes the underlying fsnotify watcher and terminates loop.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

// loop coalesces bursts of fsnotify events for the config file into a
// single reload, the same debounce discipline quasar's watcher.go
// applies per-file before emitting a Change.
func (w *Watcher) loop() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher", err)
		}
	}
}

func (w *Watcher) reload() {
	p, err := w.loader.Load()
	if err != nil {
		w.log.Error("config reload failed", err)
		return
	}
	select {
	case w.Changes <- p:
	default:
		// a pending reload is still unread; drop this one rather than block.
	}
}
