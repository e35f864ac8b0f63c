package agent

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gitwars/tankbot/rules"
)

// DefaultReloadDelay lets a burst of writes settle before the doctrine is
// read back.
const DefaultReloadDelay = 200 * time.Millisecond

// Reloader watches a doctrine file and swaps the engine's rules whenever it
// is written, created or renamed into place. The parent directory is watched
// so replacing the file by rename is seen too.
type Reloader struct {
	engine  *rules.Engine
	path    string
	delay   time.Duration
	watcher *fsnotify.Watcher
}

// NewReloader starts watching path's directory. The file's current version
// is assumed to be loaded already. If delay <= 0, DefaultReloadDelay is used.
func NewReloader(engine *rules.Engine, path string, delay time.Duration) (*Reloader, error) {
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("doctrine path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Reloader{engine: engine, path: abs, delay: delay, watcher: w}, nil
}

// Start handles file events until ctx is cancelled, then closes the watcher.
func (r *Reloader) Start(ctx context.Context) error {
	defer r.watcher.Close()
	slog.Info("doctrine reloader started", "path", r.path, "delay", r.delay)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			slog.Info("doctrine reloader stopped")
			return nil
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if r.relevant(ev) {
				slog.Debug("doctrine file changed", "op", ev.Op.String())
				pending = time.After(r.delay)
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("doctrine watcher error", "error", err)
		case <-pending:
			pending = nil
			r.reload()
		}
	}
}

// Close stops watching. Start closes the watcher itself on return.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}

// relevant reports whether ev may have changed the doctrine's contents.
// Removal and rename away are ignored; the replacement arrives as a create.
func (r *Reloader) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != r.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// reload reads the doctrine and swaps it in. A broken file is logged and
// the previous rules stay active.
func (r *Reloader) reload() bool {
	d, err := rules.LoadDoctrine(r.path)
	if err != nil {
		slog.Error("doctrine reload failed", "path", r.path, "error", err)
		return false
	}
	if err := r.engine.Swap(d); err != nil {
		slog.Error("doctrine swap failed", "path", r.path, "error", err)
		return false
	}
	return true
}
