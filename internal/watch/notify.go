package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notifier turns file system events on the store file into early wake-ups
// for the poll loop. The mtime poll stays the source of truth; the notifier
// only shortens the latency between an external edit and the next tick.
//
// It watches the store's parent directory rather than the file itself so
// editors that replace the file via rename keep being observed.
type Notifier struct {
	watcher *fsnotify.Watcher
	dir     string
	base    string

	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewNotifier creates a Notifier for the store file at path. The notifier
// must be started with Start before it fires.
func NewNotifier(path string) (*Notifier, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Notifier{
		watcher: watcher,
		dir:     filepath.Dir(path),
		base:    filepath.Base(path),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching and invokes wake for every relevant event on the
// store file.
func (n *Notifier) Start(wake func()) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return fmt.Errorf("notifier already running")
	}
	if err := n.watcher.Add(n.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", n.dir, err)
	}

	n.running = true
	n.wg.Add(1)
	go n.processEvents(wake)
	return nil
}

// Stop stops watching and blocks until the event goroutine has exited.
func (n *Notifier) Stop() error {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return nil
	}
	n.running = false
	n.mu.Unlock()

	close(n.done)
	if err := n.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	n.wg.Wait()
	return nil
}

func (n *Notifier) processEvents(wake func()) {
	defer n.wg.Done()

	for {
		select {
		case <-n.done:
			return
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if n.relevant(event) {
				wake()
			}
		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (n *Notifier) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != n.base {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
