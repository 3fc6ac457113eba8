// Package watch reports changes to individual files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures a Watcher.
type Config struct {
	// Files are the paths to watch.
	Files []string

	// Debounce is the quiet period after the last event before OnChange
	// fires. Default: 100ms.
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher calls OnChange once per burst of writes to a watched file.
//
// Editors often replace files instead of writing them in place, so the
// watcher follows each file's directory and filters by name.
type Watcher struct {
	config   Config
	files    map[string]bool
	onChange func(path string)

	mu     sync.Mutex
	timers map[string]*pending
}

// pending is one scheduled OnChange call.
type pending struct {
	timer *time.Timer
}

// New creates a Watcher for cfg.Files.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce == 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	w := &Watcher{
		config: cfg,
		files:  make(map[string]bool),
		timers: make(map[string]*pending),
	}
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		w.files[abs] = true
	}
	return w, nil
}

// OnChange sets the callback. It runs on a timer goroutine.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err == nil && w.files[name] {
				w.schedule(name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.timers[path]; ok {
		p.timer.Stop()
	}
	p := &pending{}
	p.timer = time.AfterFunc(w.config.Debounce, func() { w.fire(path, p) })
	w.timers[path] = p
}

// fire runs when p's timer expires. A timer that had already fired when a
// later schedule call replaced it is stale and does nothing.
func (w *Watcher) fire(path string, p *pending) {
	w.mu.Lock()
	if w.timers[path] != p {
		w.mu.Unlock()
		return
	}
	delete(w.timers, path)
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(path)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, p := range w.timers {
		p.timer.Stop()
		delete(w.timers, path)
	}
}
