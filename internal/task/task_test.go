package task

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Task
	}{
		{
			name: "plain text",
			line: "Buy milk",
			want: Task{FreeText: []string{"Buy", "milk"}},
		},
		{
			name: "completed with priority and dates",
			line: "x (A) 2024-03-01 2024-03-05 Call mom",
			want: Task{
				Completed:      true,
				Priority:       "A",
				CreationDate:   "2024-03-01",
				CompletionDate: "2024-03-05",
				FreeText:       []string{"Call", "mom"},
			},
		},
		{
			name: "priority after leading date",
			line: "2024-03-01 (A) Call mom",
			want: Task{
				Priority:     "A",
				CreationDate: "2024-03-01",
				FreeText:     []string{"Call", "mom"},
			},
		},
		{
			name: "tags in any order",
			line: "due:2024-04-01 Water plants @home rec:1w +chores t:2024-03-25",
			want: Task{
				Due:       "2024-04-01",
				Recur:     "1w",
				Threshold: "2024-03-25",
				Projects:  []string{"chores"},
				Contexts:  []string{"home"},
				FreeText:  []string{"Water", "plants"},
			},
		},
		{
			name: "hidden token",
			line: "template +project h:1",
			want: Task{
				Hidden:   true,
				Projects: []string{"project"},
				FreeText: []string{"template"},
			},
		},
		{
			name: "unresolved due shorthand kept raw",
			line: "Pay rent due:fri",
			want: Task{Due: "fri", FreeText: []string{"Pay", "rent"}},
		},
		{
			name: "empty tag values degrade to free text",
			line: "odd due: rec: tokens",
			want: Task{FreeText: []string{"odd", "due:", "rec:", "tokens"}},
		},
		{
			name: "date after free text stays free text",
			line: "Meet on 2024-03-01 with Bob",
			want: Task{FreeText: []string{"Meet", "on", "2024-03-01", "with", "Bob"}},
		},
		{
			name: "x not at start is free text",
			line: "fix x marker",
			want: Task{FreeText: []string{"fix", "x", "marker"}},
		},
		{
			name: "bare plus and at are free text",
			line: "2 + 2 @ noon",
			want: Task{FreeText: []string{"2", "+", "2", "@", "noon"}},
		},
		{
			name: "duplicate tags collapse and sort",
			line: "task +b +a +b @Z @a",
			want: Task{
				Projects: []string{"a", "b"},
				Contexts: []string{"a", "Z"},
				FreeText: []string{"task"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "canonical order restored",
			line: "due:2024-04-01 Water plants @home rec:1w +chores",
			want: "Water plants +chores @home due:2024-04-01 rec:1w",
		},
		{
			name: "priority pulled before creation date",
			line: "2024-03-01 (A) Call mom",
			want: "(A) 2024-03-01 Call mom",
		},
		{
			name: "completed line with both dates",
			line: "x 2024-03-01 2024-03-05 Call mom @phone",
			want: "x 2024-03-01 2024-03-05 Call mom @phone",
		},
		{
			name: "whitespace collapsed",
			line: "  Buy   milk   +groceries ",
			want: "Buy milk +groceries",
		},
		{
			name: "hidden last",
			line: "h:1 template due:2024-05-01 +routines",
			want: "template +routines due:2024-05-01 h:1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.line)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.line, got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestRecurrence(t *testing.T) {
	tests := []struct {
		rec    string
		want   Recurrence
		wantOK bool
	}{
		{"1d", Recurrence{Amount: 1, Unit: 'd'}, true},
		{"2w", Recurrence{Amount: 2, Unit: 'w'}, true},
		{"10m", Recurrence{Amount: 10, Unit: 'm'}, true},
		{"+1y", Recurrence{Amount: 1, Unit: 'y', Strict: true}, true},
		{"", Recurrence{}, false},
		{"w", Recurrence{}, false},
		{"0d", Recurrence{}, false},
		{"-1d", Recurrence{}, false},
		{"1x", Recurrence{}, false},
		{"+", Recurrence{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.rec, func(t *testing.T) {
			got, ok := Task{Recur: tt.rec}.Recurrence()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Recurrence(%q) = %+v, %v; want %+v, %v", tt.rec, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsDate(t *testing.T) {
	for date, want := range map[string]bool{
		"2024-03-01": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-13-01": false,
		"24-03-01":   false,
		"2024-3-1":   false,
		"tomorrow":   false,
	} {
		if got := IsDate(date); got != want {
			t.Errorf("IsDate(%q) = %v, want %v", date, got, want)
		}
	}
}

func TestSplitMetadata(t *testing.T) {
	tests := []struct {
		line     string
		wantText string
		wantMeta string
	}{
		{"Call mom +family @phone due:2024-03-08", "Call mom", "+family @phone due:2024-03-08"},
		{"Just text", "Just text", ""},
		{"task due:2024-03-08 more", "task", "due:2024-03-08 more"},
	}
	for _, tt := range tests {
		text, meta := SplitMetadata(tt.line)
		if text != tt.wantText || meta != tt.wantMeta {
			t.Errorf("SplitMetadata(%q) = %q, %q; want %q, %q",
				tt.line, text, meta, tt.wantText, tt.wantMeta)
		}
	}
}

func TestURLs(t *testing.T) {
	line := "Read https://example.com/a and file:///tmp/notes.txt (see http://foo.bar)"
	want := []string{"https://example.com/a", "file:///tmp/notes.txt", "http://foo.bar"}
	if got := URLs(line); !reflect.DeepEqual(got, want) {
		t.Errorf("URLs() = %v, want %v", got, want)
	}
	if got := URLs("no links here"); got != nil {
		t.Errorf("URLs() = %v, want nil", got)
	}
}
