// Package render produces the colored, due-date-grouped task listing for
// the terminal. It consumes already-sorted lines and applies the display
// filters the feature flags describe; it never mutates tasks.
package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mdillondc/todo-txt-tui/internal/config"
	"github.com/mdillondc/todo-txt-tui/internal/task"
)

// Renderer turns sorted task lines into display text.
type Renderer struct {
	cfg   config.Settings
	theme config.Theme
	color bool

	project   lipgloss.Style
	context   lipgloss.Style
	metadata  lipgloss.Style
	completed lipgloss.Style
	link      lipgloss.Style

	headingOverdue lipgloss.Style
	headingToday   lipgloss.Style
	headingFuture  lipgloss.Style

	priorities map[string]lipgloss.Style
}

// New creates a Renderer. Color is disabled automatically when the
// terminal reports no color support.
func New(cfg config.Settings, theme config.Theme) *Renderer {
	r := &Renderer{
		cfg:   cfg,
		theme: theme,
		color: termenv.EnvColorProfile() != termenv.Ascii,
	}
	r.project = style(theme.Project)
	r.context = style(theme.Context)
	r.metadata = style(theme.Metadata)
	r.completed = style(theme.Completed)
	r.link = style(theme.Link)
	r.headingOverdue = style(theme.HeadingOverdue).Bold(true).Italic(true)
	r.headingToday = style(theme.HeadingToday).Bold(true).Italic(true)
	r.headingFuture = style(theme.HeadingFuture).Bold(true).Italic(true)
	r.priorities = make(map[string]lipgloss.Style, len(theme.Priorities))
	for letter, color := range theme.Priorities {
		r.priorities[letter] = style(color)
	}
	return r
}

func style(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Visible applies the display filters to sorted lines: hidden tasks unless
// displayHiddenTasksByDefault, and tasks whose threshold date is still in
// the future when hideTasksWithThresholdDates is set.
func (r *Renderer) Visible(lines []string, today time.Time) []string {
	today = truncate(today)
	visible := make([]string, 0, len(lines))
	for _, line := range lines {
		t := task.Parse(line)
		if t.Hidden && !r.cfg.DisplayHiddenTasksByDefault {
			continue
		}
		if r.cfg.HideTasksWithThresholdDates {
			if threshold, ok := t.ThresholdTime(); ok && threshold.After(today) {
				continue
			}
		}
		visible = append(visible, line)
	}
	return visible
}

// List renders sorted lines grouped under due-date headings. The display
// groups strictly by ascending due date with due-less tasks last, so the
// input must already be in display order.
func (r *Renderer) List(lines []string, today time.Time) string {
	today = truncate(today)
	var b strings.Builder
	currentHeading := "\x00" // sentinel distinct from any due date, including none
	first := true

	for _, line := range r.Visible(lines, today) {
		t := task.Parse(line)
		due := t.Due
		if _, ok := t.DueTime(); !ok {
			due = ""
		}
		if due != currentHeading {
			currentHeading = due
			if !first {
				b.WriteString("\n")
			}
			b.WriteString(r.heading(due, today))
			b.WriteString("\n")
			first = false
		}
		b.WriteString(r.Line(line))
		b.WriteString("\n")
	}
	return b.String()
}

// heading formats one due-date section header, e.g.
// "2024-03-08: Friday (Today)" or "No due date".
func (r *Renderer) heading(due string, today time.Time) string {
	if due == "" {
		return r.maybe(r.headingFuture, "No due date")
	}
	d, _ := time.Parse(task.DateLayout, due)
	text := due + ": " + d.Weekday().String()
	switch {
	case d.Before(today):
		return r.maybe(r.headingOverdue, text+" (Overdue)")
	case d.Equal(today):
		return r.maybe(r.headingToday, text+" (Today)")
	default:
		return r.maybe(r.headingFuture, text)
	}
}

// Line renders a single task line with word-level coloring. Completed
// tasks render uniformly dimmed; leading dates are hidden when
// hideCompletionAndCreationDates is set.
func (r *Renderer) Line(line string) string {
	t := task.Parse(line)
	fields := strings.Fields(line)
	words := make([]string, 0, len(fields))
	leading := true

	for i, word := range fields {
		if leading && r.cfg.HideCompletionAndCreationDates {
			switch {
			case i == 0 && word == "x":
			case len(word) == 3 && word[0] == '(' && word[2] == ')':
			case task.IsDate(word):
				continue // leading creation/completion date, hidden
			default:
				leading = false
			}
		}
		words = append(words, r.word(word, t.Completed))
	}
	return strings.Join(words, " ")
}

func (r *Renderer) word(word string, completed bool) string {
	if completed {
		return r.maybe(r.completed, word)
	}
	switch {
	case len(word) == 3 && word[0] == '(' && word[2] == ')' && word[1] >= 'A' && word[1] <= 'Z':
		if s, ok := r.priorities[string(word[1])]; ok {
			return r.maybe(s, word)
		}
		return word
	case len(word) > 1 && word[0] == '+':
		return r.maybe(r.project, word)
	case len(word) > 1 && word[0] == '@':
		return r.maybe(r.context, word)
	case strings.HasPrefix(word, "due:"), strings.HasPrefix(word, "rec:"),
		strings.HasPrefix(word, "t:"), word == "h:1", task.IsDate(word):
		return r.maybe(r.metadata, word)
	case strings.HasPrefix(word, "http://"), strings.HasPrefix(word, "https://"),
		strings.HasPrefix(word, "file://"):
		return r.maybe(r.link, word)
	default:
		return word
	}
}

func (r *Renderer) maybe(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
