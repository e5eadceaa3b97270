// Package watch reports debounced file changes under a directory tree.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2site/internal/logging"
)

// DefaultDelay groups the bursts of writes editors produce on save.
const DefaultDelay = 200 * time.Millisecond

// Op is the kind of change.
type Op int

const (
	Created Op = iota
	Modified
	Removed
	Renamed
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is one change. Within a batch, the last change of a path wins.
type Event struct {
	Op   Op
	Path string
}

// Filter reports whether a path is of interest.
type Filter func(path string) bool

// Handler receives a debounced batch of events, sorted by path.
type Handler func(ctx context.Context, events []Event) error

// Watcher watches directory trees. Directories created while running are
// watched as well.
type Watcher struct {
	fs      *fsnotify.Watcher
	delay   time.Duration
	filters []Filter
	logger  logging.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter adds a filter. A path must pass every filter.
func WithFilter(f Filter) Option {
	return func(w *Watcher) {
		w.filters = append(w.filters, f)
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher that waits delay after the last change before
// reporting a batch.
func New(delay time.Duration, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	w := &Watcher{fs: fsw, delay: delay, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddRecursive watches root and every directory below it that passes the
// filters.
func (w *Watcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && !w.accept(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers batches to handler until ctx is done. Handler errors are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	log := w.logger.WithContext(ctx)
	pending := make(map[string]Event)

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			change, ok := w.translate(ev)
			if !ok {
				continue
			}
			pending[change.Path] = change
			timer.Reset(w.delay)
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch.error", "error", err)

		case <-fire:
			fire = nil
			batch := drain(pending)
			log.Debug("watch.batch", "events", len(batch))
			if err := handler(ctx, batch); err != nil {
				log.Error("watch.handler_failed", "error", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	if !w.accept(ev.Name) {
		return Event{}, false
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = Created
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.AddRecursive(ev.Name); err != nil {
				w.logger.Warn("watch.add_failed", "path", ev.Name, "error", err)
			}
		}
	case ev.Has(fsnotify.Write):
		op = Modified
	case ev.Has(fsnotify.Remove):
		op = Removed
	case ev.Has(fsnotify.Rename):
		op = Renamed
	default:
		// permission changes do not alter content
		return Event{}, false
	}
	return Event{Op: op, Path: ev.Name}, true
}

func (w *Watcher) accept(path string) bool {
	for _, f := range w.filters {
		if !f(path) {
			return false
		}
	}
	return true
}

func drain(pending map[string]Event) []Event {
	events := make([]Event, 0, len(pending))
	for path, ev := range pending {
		events = append(events, ev)
		delete(pending, path)
	}
	slices.SortFunc(events, func(a, b Event) int { return strings.Compare(a.Path, b.Path) })
	return events
}

// IgnoreHidden rejects paths whose base name starts with a dot, such as
// editor swap files and VCS directories.
func IgnoreHidden(path string) bool {
	return !strings.HasPrefix(filepath.Base(path), ".")
}

// IgnoreTemp rejects the backup files editors write next to the original.
func IgnoreTemp(path string) bool {
	base := filepath.Base(path)
	return !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp") && !strings.HasSuffix(base, ".tmp")
}

// IgnoreDir rejects dir and everything below it. It keeps the build output
// from retriggering builds when it lives inside the content tree.
func IgnoreDir(dir string) Filter {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	return func(path string) bool {
		p, err := filepath.Abs(path)
		if err != nil {
			return true
		}
		return p != abs && !strings.HasPrefix(p, abs+string(filepath.Separator))
	}
}
