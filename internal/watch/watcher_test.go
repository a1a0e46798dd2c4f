package watch

import (
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mdillondc/todo-txt-tui/internal/store"
)

func newTestWatcher(t *testing.T, blocked *bool) (*store.Store, *Watcher) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "todo.txt"))
	w, err := New(st, &Config{
		Interval:  time.Millisecond,
		IsBlocked: func() bool { return blocked != nil && *blocked },
		Logger:    log.New(os.Stderr, "[watch] ", 0),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return st, w
}

// touch writes lines and pushes the file's mtime forward so consecutive
// writes within one timestamp granule still register as changes.
func touch(t *testing.T, st *store.Store, lines []string) {
	t.Helper()
	if err := st.Write(lines); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(st.Path(), future, future); err != nil {
		t.Fatal(err)
	}
}

func TestTickUnchangedFile(t *testing.T) {
	_, w := newTestWatcher(t, nil)
	refresh, err := w.Tick(Focus{})
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if refresh != nil {
		t.Errorf("Tick() = %+v, want nil for an unchanged file", refresh)
	}
}

func TestTickPicksUpExternalWrite(t *testing.T) {
	st, w := newTestWatcher(t, nil)

	touch(t, st, []string{"beta due:2024-04-02", "alpha due:2024-04-01"})

	refresh, err := w.Tick(Focus{})
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if refresh == nil {
		t.Fatal("Tick() = nil, want a refresh after external write")
	}
	want := []string{"alpha due:2024-04-01", "beta due:2024-04-02"}
	if !reflect.DeepEqual(refresh.Lines, want) {
		t.Errorf("refresh.Lines = %v, want %v", refresh.Lines, want)
	}

	// Second tick sees no further change.
	refresh, err = w.Tick(Focus{})
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if refresh != nil {
		t.Errorf("Tick() = %+v, want nil when already reconciled", refresh)
	}
}

func TestTickDeferredWhileBlocked(t *testing.T) {
	blocked := true
	st, w := newTestWatcher(t, &blocked)

	touch(t, st, []string{"task"})

	refresh, err := w.Tick(Focus{})
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if refresh != nil {
		t.Errorf("Tick() = %+v, want nil while blocked", refresh)
	}

	// Unblocking makes the deferred change land on the next tick.
	blocked = false
	refresh, err = w.Tick(Focus{})
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if refresh == nil || !reflect.DeepEqual(refresh.Lines, []string{"task"}) {
		t.Errorf("Tick() after unblock = %+v, want the deferred change", refresh)
	}
}

func TestRefocus(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma"}
	tests := []struct {
		name string
		prev Focus
		want Focus
	}{
		{
			name: "exact text match wins",
			prev: Focus{Text: "beta", Index: 0},
			want: Focus{Text: "beta", Index: 1},
		},
		{
			name: "missing text falls back to index",
			prev: Focus{Text: "deleted", Index: 2},
			want: Focus{Text: "gamma", Index: 2},
		},
		{
			name: "index clamped to new length",
			prev: Focus{Text: "deleted", Index: 9},
			want: Focus{Text: "gamma", Index: 2},
		},
		{
			name: "negative index clamped to zero",
			prev: Focus{Text: "deleted", Index: -1},
			want: Focus{Text: "alpha", Index: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refocus(lines, tt.prev); got != tt.want {
				t.Errorf("refocus() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := refocus(nil, Focus{Text: "x", Index: 3}); got != (Focus{}) {
		t.Errorf("refocus(empty) = %+v, want zero focus", got)
	}
}

func TestNudgeNeverBlocks(t *testing.T) {
	_, w := newTestWatcher(t, nil)
	for i := 0; i < 10; i++ {
		w.Nudge()
	}
}

func TestNotifierWakesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	st := store.New(path)

	n, err := NewNotifier(path)
	if err != nil {
		t.Fatalf("NewNotifier() error: %v", err)
	}

	woke := make(chan struct{}, 1)
	if err := n.Start(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer n.Stop()

	if err := st.Write([]string{"task"}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("no wake-up after writing the watched file")
	}
}

func TestNotifierIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	n, err := NewNotifier(filepath.Join(dir, "todo.txt"))
	if err != nil {
		t.Fatalf("NewNotifier() error: %v", err)
	}

	woke := make(chan struct{}, 1)
	if err := n.Start(func() { woke <- struct{}{} }); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer n.Stop()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-woke:
		t.Fatal("woke up for an unrelated sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNotifierDoubleStart(t *testing.T) {
	n, err := NewNotifier(filepath.Join(t.TempDir(), "todo.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Start(func() {}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer n.Stop()
	if err := n.Start(func() {}); err == nil {
		t.Error("second Start() succeeded, want error")
	}
}
