package dashboard

import (
	"encoding/json"
	"log"
	"time"

	"github.com/mdillondc/todo-txt-tui/internal/task"
)

// Handler bridges watcher refreshes to dashboard broadcasts. It keeps the
// server's snapshot current and recomputes statistics on every update.
type Handler struct {
	server *Server
	logger *log.Logger
}

// NewHandler creates a handler connected to a dashboard server.
func NewHandler(server *Server, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{server: server, logger: logger}
}

// OnListChanged publishes the re-sorted task list and its statistics.
func (h *Handler) OnListChanged(lines []string, today time.Time) {
	h.server.snapshotMu.Lock()
	h.server.snapshot = ListUpdateData{Lines: lines}
	h.server.snapshotMu.Unlock()

	if data, err := json.Marshal(ListUpdateData{Lines: lines}); err == nil {
		h.server.Broadcast(Message{Type: MessageTypeListUpdate, Timestamp: time.Now(), Data: data})
	} else {
		h.logger.Printf("failed to marshal list update: %v", err)
	}

	stats := computeStats(lines, today)
	if data, err := json.Marshal(stats); err == nil {
		h.server.Broadcast(Message{Type: MessageTypeStats, Timestamp: time.Now(), Data: data})
	} else {
		h.logger.Printf("failed to marshal stats: %v", err)
	}
}

// computeStats buckets tasks by completion and due date relative to today.
func computeStats(lines []string, today time.Time) StatsData {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	stats := StatsData{Total: len(lines)}
	for _, line := range lines {
		t := task.Parse(line)
		if t.Completed {
			stats.Completed++
			continue
		}
		due, ok := t.DueTime()
		switch {
		case !ok:
			stats.NoDueDate++
		case due.Before(today):
			stats.Overdue++
		case due.Equal(today):
			stats.DueToday++
		default:
			stats.Upcoming++
		}
	}
	return stats
}
