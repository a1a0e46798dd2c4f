// Package list implements the mutation operations over the task store:
// add, edit, delete, complete, postpone, archive and whole-file
// normalization. It composes the parser, the date resolver and the
// recurrence engine, and persists every change through the store in one
// whole-file write.
//
// Operations locate their target by canonical text: a stored line matches
// when its normalized form equals the normalized argument. A missing target
// is a no-op, never an error. Adding a line that normalizes identically to
// a stored one is silently skipped so duplicates cannot accumulate.
package list

import (
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mdillondc/todo-txt-tui/internal/config"
	"github.com/mdillondc/todo-txt-tui/internal/dates"
	"github.com/mdillondc/todo-txt-tui/internal/store"
	"github.com/mdillondc/todo-txt-tui/internal/task"
)

// List applies mutation operations to one task store.
type List struct {
	store    *store.Store
	cfg      config.Settings
	resolver *dates.Resolver
	logger   *log.Logger
	now      func() time.Time
}

// New creates a List over the given store. The settings value is immutable
// for the lifetime of the List. If logger is nil, a default logger writing
// to stderr is used.
func New(st *store.Store, cfg config.Settings, logger *log.Logger) *List {
	if logger == nil {
		logger = log.New(os.Stderr, "[list] ", log.LstdFlags)
	}
	return &List{
		store:    st,
		cfg:      cfg,
		resolver: dates.NewResolver(),
		logger:   logger,
		now:      time.Now,
	}
}

// Read returns the stored task lines.
func (l *List) Read() ([]string, error) {
	return l.store.Read()
}

// Sorted returns the stored task lines in display order.
func (l *List) Sorted() ([]string, error) {
	lines, err := l.store.Read()
	if err != nil {
		return nil, err
	}
	return task.Sort(lines), nil
}

func (l *List) today() string {
	return l.now().Format(task.DateLayout)
}

// resolveDue rewrites an unresolved due: shorthand to a concrete ISO date.
// Unrecognized values are left untouched.
func (l *List) resolveDue(t *task.Task) {
	if t.Due == "" {
		return
	}
	if resolved, ok := l.resolver.Resolve(t.Due, l.now()); ok {
		t.Due = resolved
	}
}

// contains reports whether any of lines normalizes to canonical.
func contains(lines []string, canonical string) bool {
	for _, line := range lines {
		if task.Normalize(line) == canonical {
			return true
		}
	}
	return false
}

// Add normalizes text and appends it as a new line. When creation dates are
// enabled and the text carries no leading date, today's date is stamped
// first. A task that normalizes identically to a stored line is skipped
// silently. The canonical text is returned either way.
func (l *List) Add(text string) (string, error) {
	t := task.Parse(text)
	if l.cfg.EnableCompletionAndCreationDates && t.CreationDate == "" {
		t.CreationDate = l.today()
	}
	l.resolveDue(&t)
	line := t.Format()

	existing, err := l.store.Read()
	if err != nil {
		return "", err
	}
	if contains(existing, line) {
		l.logger.Printf("skipped duplicate: %s", line)
		return line, nil
	}
	if err := l.store.Append(line); err != nil {
		return "", err
	}
	return line, nil
}

// Edit replaces the first stored line matching oldText with the normalized
// newText, resolving any due-date shorthand in it. No match is a no-op. The
// canonical new text is returned.
func (l *List) Edit(oldText, newText string) (string, error) {
	oldCanonical := task.Normalize(oldText)
	t := task.Parse(newText)
	l.resolveDue(&t)
	newCanonical := t.Format()

	lines, err := l.store.Read()
	if err != nil {
		return "", err
	}
	for i, line := range lines {
		if task.Normalize(line) == oldCanonical {
			lines[i] = newCanonical
			if err := l.store.Write(lines); err != nil {
				return "", err
			}
			break
		}
	}
	return newCanonical, nil
}

// Delete removes every stored line matching text. No match is a no-op.
func (l *List) Delete(text string) error {
	canonical := task.Normalize(text)
	lines, err := l.store.Read()
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if task.Normalize(line) != canonical {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return l.store.Write(kept)
}

// Complete toggles the completion state of the first stored line matching
// text. Completing a task that carries a rec: rule also synthesizes its
// follow-up line, appended to the store unless an identical line already
// exists. The toggled line's canonical text is returned; a missing target
// returns empty text without error.
func (l *List) Complete(text string) (string, error) {
	target := task.Normalize(text)
	lines, err := l.store.Read()
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(lines)+1)
	var result, spawned string
	toggled := false
	for _, line := range lines {
		if toggled || task.Normalize(line) != target {
			out = append(out, line)
			continue
		}
		toggled = true
		t := task.Parse(line)
		if t.Completed {
			result = l.uncomplete(t)
		} else {
			result = l.markComplete(t)
			if _, ok := t.Recurrence(); ok {
				spawned = l.spawn(t)
			}
		}
		out = append(out, result)
	}
	if !toggled {
		return "", nil
	}
	if spawned != "" && !contains(out, spawned) {
		out = append(out, spawned)
	}
	if err := l.store.Write(out); err != nil {
		return "", err
	}
	return result, nil
}

// markComplete turns an incomplete task into its completed form, stamping
// today as the completion date when completion dates are enabled.
func (l *List) markComplete(t task.Task) string {
	t.Completed = true
	if l.cfg.EnableCompletionAndCreationDates {
		t.CompletionDate = l.today()
	}
	return t.Format()
}

// uncomplete strips the completion marker. With completion dates enabled,
// two leading dates drop the second (the completion date); a single leading
// date is dropped entirely. A lone leading date on a completed line is
// ambiguous between creation and completion, so this errs toward removing
// it; free text that itself starts with a date-shaped word can therefore
// lose that word's leading-date reading. Known limitation of the line
// format.
func (l *List) uncomplete(t task.Task) string {
	t.Completed = false
	if l.cfg.EnableCompletionAndCreationDates {
		if t.CreationDate != "" && t.CompletionDate != "" {
			t.CompletionDate = ""
		} else if t.CreationDate != "" {
			t.CreationDate = ""
		}
	}
	return t.Format()
}

// spawn builds the follow-up line for a completed recurring task: due and
// threshold advanced per the rec: rule, the old creation date stripped, and
// a fresh one stamped when creation dates are enabled.
func (l *List) spawn(t task.Task) string {
	due, threshold, ok := task.Advance(t, l.now())
	if !ok {
		return ""
	}
	t.Completed = false
	t.CompletionDate = ""
	if due != "" {
		t.Due = due
	}
	t.Threshold = threshold
	t.CreationDate = ""
	if l.cfg.EnableCompletionAndCreationDates {
		t.CreationDate = l.today()
	}
	return t.Format()
}

// Postpone moves the due date of the first stored line matching text. A due
// date of today or later slips one day; an overdue date jumps to tomorrow
// from now rather than creeping forward from the past. A task without a
// concrete due: date is a no-op, reported as empty text.
func (l *List) Postpone(text string) (string, error) {
	t := task.Parse(text)
	due, ok := t.DueTime()
	if !ok {
		return "", nil
	}
	today, _ := time.Parse(task.DateLayout, l.today())
	var newDue time.Time
	if !due.Before(today) {
		newDue = due.AddDate(0, 0, 1)
	} else {
		newDue = today.AddDate(0, 0, 1)
	}
	canonical := t.Format()
	t.Due = newDue.Format(task.DateLayout)
	updated := t.Format()

	lines, err := l.store.Read()
	if err != nil {
		return "", err
	}
	for i, line := range lines {
		if task.Normalize(line) == canonical {
			lines[i] = updated
			if err := l.store.Write(lines); err != nil {
				return "", err
			}
			return updated, nil
		}
	}
	return "", nil
}

// Archive moves every completed line to the sibling archive file and
// rewrites the primary store with only the incomplete lines.
func (l *List) Archive() error {
	lines, err := l.store.Read()
	if err != nil {
		return err
	}
	var completed, incomplete []string
	for _, line := range lines {
		if strings.HasPrefix(line, "x ") {
			completed = append(completed, line)
		} else {
			incomplete = append(incomplete, line)
		}
	}
	if err := l.store.AppendArchive(completed); err != nil {
		return err
	}
	if len(completed) > 0 {
		l.logger.Printf("archived %d completed tasks", len(completed))
	}
	return l.store.Write(incomplete)
}

// NormalizeAll rewrites the whole store in canonical form, dropping blank
// lines and collapsing lines that normalize identically down to the first
// occurrence. The normalized lines are returned.
func (l *List) NormalizeAll() ([]string, error) {
	lines, err := l.store.Read()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(lines))
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		canonical := task.Normalize(line)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		normalized = append(normalized, canonical)
	}
	if err := l.store.Write(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Search returns the stored lines containing query, case-insensitively, in
// display order.
func (l *List) Search(query string) ([]string, error) {
	lines, err := l.store.Read()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matched []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), q) {
			matched = append(matched, line)
		}
	}
	return task.Sort(matched), nil
}

// Projects returns the unique project tags across the store, sorted
// case-insensitively, for autosuggestion.
func (l *List) Projects() ([]string, error) {
	return l.collect(func(t task.Task) []string { return t.Projects })
}

// Contexts returns the unique context tags across the store, sorted
// case-insensitively, for autosuggestion.
func (l *List) Contexts() ([]string, error) {
	return l.collect(func(t task.Task) []string { return t.Contexts })
}

func (l *List) collect(pick func(task.Task) []string) ([]string, error) {
	lines, err := l.store.Read()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, line := range lines {
		for _, tag := range pick(task.Parse(line)) {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags, nil
}
