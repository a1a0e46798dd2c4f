package task

import (
	"sort"
	"strings"
	"time"
)

// sentinel due date for tasks with no due date, so they group after all
// dated tasks.
var noDueDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Sort orders task lines for display grouping: ascending due date with
// due-less tasks last, then case-insensitive text. The text key skips the
// leading completion marker and leading date tokens so a completed task
// sorts next to its incomplete form. The sort is stable; ties keep input
// order. The input slice is not modified.
func Sort(lines []string) []string {
	type keyed struct {
		line string
		due  time.Time
		text string
	}
	ks := make([]keyed, len(lines))
	for i, line := range lines {
		due, text := sortKey(line)
		ks[i] = keyed{line: line, due: due, text: text}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if !ks[i].due.Equal(ks[j].due) {
			return ks[i].due.Before(ks[j].due)
		}
		return ks[i].text < ks[j].text
	})
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.line
	}
	return out
}

func sortKey(line string) (time.Time, string) {
	due := noDueDate
	if d, ok := Parse(line).DueTime(); ok {
		due = d
	}

	fields := strings.Fields(line)
	parts := make([]string, 0, len(fields))
	leading := true
	for i, f := range fields {
		if i == 0 && f == "x" {
			continue
		}
		if leading {
			if IsDate(f) {
				continue
			}
			if !isPriority(f) {
				leading = false
			}
		}
		parts = append(parts, f)
	}
	return due, strings.ToLower(strings.Join(parts, " "))
}
