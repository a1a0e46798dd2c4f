// Package task implements the todo.txt line format: the structured task
// record, the tokenizer and classifier that parse a raw line, the canonical
// formatter, display-order sorting, and recurrence date arithmetic.
//
// Every stored line maps to a Task and back. The canonical serialization
// order is:
//
//	["x "] [(P)] [creation [completion]] free text... +projects @contexts due: rec: t: h:1
//
// Normalize is idempotent: normalizing a canonical line yields the same
// line. Parsing never fails; token shapes that are not recognized degrade
// to free text.
package task

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date layout used everywhere in the file
// format. All dates are local calendar dates; there is no timezone handling.
const DateLayout = "2006-01-02"

// Task is the structured representation of one todo.txt line.
//
// Date fields hold the literal ISO token text so that a round trip through
// Parse and Format is lossless. Due, Recur and Threshold hold the raw tag
// values; Due may still be an unresolved shorthand (e.g. "fri") until the
// date resolver has run.
type Task struct {
	Completed bool
	Priority  string // single letter A-Z, empty when absent

	// CreationDate and CompletionDate are the up-to-two leading date
	// tokens, in order. A completion date is only meaningful on a
	// completed task, but a second leading date on an incomplete line is
	// preserved here so the line survives normalization unchanged.
	CreationDate   string
	CompletionDate string

	Due       string // value of the due: tag
	Recur     string // value of the rec: tag
	Threshold string // value of the t: tag
	Hidden    bool   // the exact token h:1

	Projects []string // without the + prefix, sorted case-insensitively
	Contexts []string // without the @ prefix, sorted case-insensitively
	FreeText []string // remaining tokens in input order
}

// Recurrence is the parsed form of a rec: tag value.
type Recurrence struct {
	Amount int
	Unit   byte // 'd', 'w', 'm' or 'y'
	Strict bool // leading +: advance from the prior schedule, not from completion
}

// IsDate reports whether s is a calendar date in ISO form.
func IsDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// isPriority reports whether tok has the bracketed single-letter shape (A)-(Z).
func isPriority(tok string) bool {
	return len(tok) == 3 && tok[0] == '(' && tok[2] == ')' && tok[1] >= 'A' && tok[1] <= 'Z'
}

// Parse classifies each whitespace-separated token of line into a Task.
//
// The leading region accepts, in order: a literal "x" completion marker, a
// bracketed priority, and up to two date tokens. A priority that follows the
// leading dates is still accepted so that "2024-03-01 (A) Call mom"
// normalizes to "(A) 2024-03-01 Call mom". The first token that fits none of
// these shapes starts the free text; later date- or priority-shaped tokens
// stay in the free text verbatim.
func Parse(line string) Task {
	var t Task
	fields := strings.Fields(line)

	i := 0
	if i < len(fields) && fields[i] == "x" {
		t.Completed = true
		i++
	}
	if i < len(fields) && isPriority(fields[i]) {
		t.Priority = string(fields[i][1])
		i++
	}
	for i < len(fields) && IsDate(fields[i]) {
		if t.CreationDate == "" {
			t.CreationDate = fields[i]
		} else if t.CompletionDate == "" {
			t.CompletionDate = fields[i]
		} else {
			break
		}
		i++
	}
	if t.Priority == "" && i < len(fields) && isPriority(fields[i]) {
		t.Priority = string(fields[i][1])
		i++
	}

	for ; i < len(fields); i++ {
		tok := fields[i]
		switch {
		case len(tok) > 1 && tok[0] == '+':
			t.Projects = append(t.Projects, tok[1:])
		case len(tok) > 1 && tok[0] == '@':
			t.Contexts = append(t.Contexts, tok[1:])
		case len(tok) > len("due:") && strings.HasPrefix(tok, "due:"):
			t.Due = tok[len("due:"):]
		case len(tok) > len("rec:") && strings.HasPrefix(tok, "rec:"):
			t.Recur = tok[len("rec:"):]
		case len(tok) > len("t:") && strings.HasPrefix(tok, "t:"):
			t.Threshold = tok[len("t:"):]
		case tok == "h:1":
			t.Hidden = true
		default:
			t.FreeText = append(t.FreeText, tok)
		}
	}

	t.Projects = sortTags(t.Projects)
	t.Contexts = sortTags(t.Contexts)
	return t
}

// sortTags removes exact duplicates and sorts case-insensitively, keeping
// input order between tags that differ only in case.
func sortTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// Format serializes the task in canonical order, omitting absent fields and
// joining tokens with single spaces.
func (t Task) Format() string {
	parts := make([]string, 0, 8+len(t.FreeText)+len(t.Projects)+len(t.Contexts))
	if t.Completed {
		parts = append(parts, "x")
	}
	if t.Priority != "" {
		parts = append(parts, "("+t.Priority+")")
	}
	if t.CreationDate != "" {
		parts = append(parts, t.CreationDate)
	}
	if t.CompletionDate != "" {
		parts = append(parts, t.CompletionDate)
	}
	parts = append(parts, t.FreeText...)
	for _, p := range t.Projects {
		parts = append(parts, "+"+p)
	}
	for _, c := range t.Contexts {
		parts = append(parts, "@"+c)
	}
	if t.Due != "" {
		parts = append(parts, "due:"+t.Due)
	}
	if t.Recur != "" {
		parts = append(parts, "rec:"+t.Recur)
	}
	if t.Threshold != "" {
		parts = append(parts, "t:"+t.Threshold)
	}
	if t.Hidden {
		parts = append(parts, "h:1")
	}
	return strings.Join(parts, " ")
}

// Normalize rewrites line in canonical form. Applying it twice yields the
// same text as applying it once.
func Normalize(line string) string {
	return Parse(line).Format()
}

// DueTime returns the due date as a time when the due: value is a concrete
// ISO date.
func (t Task) DueTime() (time.Time, bool) {
	return parseDate(t.Due)
}

// ThresholdTime returns the threshold date as a time when the t: value is a
// concrete ISO date.
func (t Task) ThresholdTime() (time.Time, bool) {
	return parseDate(t.Threshold)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Recurrence parses the rec: value. It returns false when the task carries
// no rec: tag or the value does not match [+]N{d,w,m,y} with N positive.
func (t Task) Recurrence() (Recurrence, bool) {
	s := t.Recur
	if s == "" {
		return Recurrence{}, false
	}
	var r Recurrence
	if strings.HasPrefix(s, "+") {
		r.Strict = true
		s = s[1:]
	}
	if len(s) < 2 {
		return Recurrence{}, false
	}
	switch s[len(s)-1] {
	case 'd', 'w', 'm', 'y':
		r.Unit = s[len(s)-1]
	default:
		return Recurrence{}, false
	}
	amount, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || amount <= 0 {
		return Recurrence{}, false
	}
	r.Amount = amount
	return r, true
}
