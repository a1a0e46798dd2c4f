// Package watch reconciles the in-memory task view with a store file that
// other processes may edit concurrently.
//
// The watcher polls the store's modification timestamp on a fixed interval.
// When the file changed it re-reads, re-sorts and rebuilds the view, then
// tries to restore focus to the task whose canonical text matches the
// previously focused one, falling back to the old positional index when the
// line was edited away externally.
//
// A single Tick is the unit of work, so tests (and the fsnotify Notifier)
// drive reconciliation synchronously without a running timer. Run wraps
// Tick in a ticker loop for production use. A tick that finds a blocking
// modal interaction in progress is deferred, not dropped: nothing advances
// and the next tick retries at the same interval.
package watch

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mdillondc/todo-txt-tui/internal/store"
	"github.com/mdillondc/todo-txt-tui/internal/task"
)

// Focus identifies the task the presentation layer currently has selected,
// by canonical text and by position in the displayed order.
type Focus struct {
	Text  string
	Index int
}

// Refresh is the outcome of a reconciliation pass: the re-read, re-sorted
// view and the restored focus.
type Refresh struct {
	Lines []string
	Focus Focus
}

// Config holds watcher configuration.
type Config struct {
	// Interval between polls of the store's modification time.
	Interval time.Duration

	// IsBlocked reports whether the presentation layer has a modal
	// interaction in progress. While it returns true, ticks are deferred.
	// Nil means never blocked.
	IsBlocked func() bool

	// Logger for watcher activity.
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: 2 * time.Second,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
	}
}

// Watcher polls one store for external modification.
type Watcher struct {
	store   *store.Store
	config  *Config
	lastMod time.Time
	nudge   chan struct{}
}

// New creates a Watcher over the given store. The current modification time
// is taken as the baseline, so only changes after creation trigger a
// refresh. If config is nil, defaults are used.
func New(st *store.Store, config *Config) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "[watch] ", log.LstdFlags)
	}
	mod, err := st.ModTime()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		store:   st,
		config:  config,
		lastMod: mod,
		nudge:   make(chan struct{}, 1),
	}, nil
}

// Tick performs one reconciliation pass against the focus the presentation
// layer reports. It returns nil when nothing needs to happen: the tick was
// deferred by a blocking interaction, or the file is unchanged.
func (w *Watcher) Tick(focus Focus) (*Refresh, error) {
	if w.config.IsBlocked != nil && w.config.IsBlocked() {
		return nil, nil
	}

	mod, err := w.store.ModTime()
	if err != nil {
		return nil, err
	}
	if mod.Equal(w.lastMod) {
		return nil, nil
	}

	lines, err := w.store.Read()
	if err != nil {
		return nil, err
	}
	sorted := task.Sort(lines)
	w.lastMod = mod
	w.config.Logger.Printf("store changed, %d tasks", len(sorted))
	return &Refresh{Lines: sorted, Focus: refocus(sorted, focus)}, nil
}

// refocus restores the selection after a rebuild: an exact canonical-text
// match wins; otherwise the previous index, clamped to the new view.
func refocus(lines []string, prev Focus) Focus {
	for i, line := range lines {
		if line == prev.Text {
			return Focus{Text: line, Index: i}
		}
	}
	if len(lines) == 0 {
		return Focus{}
	}
	idx := prev.Index
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return Focus{Text: lines[idx], Index: idx}
}

// Nudge wakes the poll loop ahead of its next scheduled tick. It never
// blocks; a nudge while one is already pending is a no-op.
func (w *Watcher) Nudge() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Run drives Tick on the configured interval until ctx is done. focus
// supplies the current selection before each pass and apply receives every
// refresh. Tick errors are logged and the loop keeps polling.
func (w *Watcher) Run(ctx context.Context, focus func() Focus, apply func(Refresh)) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-w.nudge:
		}

		refresh, err := w.Tick(focus())
		if err != nil {
			w.config.Logger.Printf("poll failed: %v", err)
			continue
		}
		if refresh != nil {
			apply(*refresh)
		}
	}
}
