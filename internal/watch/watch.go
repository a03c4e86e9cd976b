// Package watch reloads the page content file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/phanxgames/nuclea/site"
)

// DefaultDebounce is how long the file must stay quiet before it is re-read.
const DefaultDebounce = 200 * time.Millisecond

// Reload is the result of re-reading the content file. Err is set when the
// file could not be read or failed validation.
type Reload struct {
	Path    string
	Content *site.Content
	Err     error
}

// LoadFunc reads and validates a content file.
type LoadFunc func(path string) (*site.Content, error)

// Watcher monitors one content file. The parent directory is watched rather
// than the file so editors that save by rename are still seen.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Reloads  <-chan Reload // Read-only external channel

	reloads chan Reload
	load    LoadFunc
	log     *zap.Logger
	fw      *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
	started bool
	once    sync.Once
}

// New creates a watcher for path. A nil load uses site.Load; a nil logger
// discards output.
func New(path string, load LoadFunc, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if load == nil {
		load = site.Load
	}
	if log == nil {
		log = zap.NewNop()
	}
	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Debounce: DefaultDebounce,
		Reloads:  ch,
		reloads:  ch,
		load:     load,
		log:      log.Named("watch"),
		fw:       fw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.fw.Add(filepath.Dir(w.Path)); err != nil {
		w.fw.Close()
		return err
	}
	w.log.Info("watching content", zap.String("path", w.Path))
	w.started = true
	go w.loop()
	return nil
}

// Stop ends the watch and closes Reloads. It is safe to call more than once
// and after a failed Start.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		w.fw.Close()
		if w.started {
			<-w.done
		}
		close(w.reloads)
	})
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	tick := w.Debounce / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.Debounce {
				continue
			}
			pending = time.Time{}
			w.emit()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) emit() {
	c, err := w.load(w.Path)
	if err != nil {
		w.log.Warn("content reload failed", zap.String("path", w.Path), zap.Error(err))
	} else {
		w.log.Debug("content changed", zap.String("path", w.Path))
	}
	select {
	case w.reloads <- Reload{Path: w.Path, Content: c, Err: err}:
	case <-w.stop:
	}
}
