package dates

import (
	"testing"
	"time"
)

// Wednesday.
var refDay = time.Date(2024, 3, 6, 15, 4, 5, 0, time.UTC)

func TestResolve(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name   string
		value  string
		want   string
		wantOK bool
	}{
		{"iso passthrough", "2024-12-24", "2024-12-24", true},
		{"today short", "tod", "2024-03-06", true},
		{"today long", "today", "2024-03-06", true},
		{"tomorrow short", "tom", "2024-03-07", true},
		{"tomorrow long", "tomorrow", "2024-03-07", true},
		{"next week is upcoming monday", "nw", "2024-03-11", true},
		{"nextweek long form", "nextweek", "2024-03-11", true},
		{"next month is the first", "nm", "2024-04-01", true},
		{"upcoming friday", "fri", "2024-03-08", true},
		{"weekday is case-insensitive", "FRI", "2024-03-08", true},
		{"past weekday rolls forward", "mon", "2024-03-11", true},
		{"same weekday never resolves to today", "wed", "2024-03-13", true},
		{"day month ahead this year", "24dec", "2024-12-24", true},
		{"day month already past rolls to next year", "1jan", "2025-01-01", true},
		{"same day month resolves to today", "6mar", "2024-03-06", true},
		{"explicit year never rolls", "1jan2024", "2024-01-01", true},
		{"future explicit year", "11dec2027", "2027-12-11", true},
		{"impossible calendar day", "31feb", "", false},
		{"unknown month abbreviation", "5xyz", "", false},
		{"free text passes through", "someday", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.value, refDay)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = %q, %v; want %q, %v",
					tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveNextWeekOnMonday(t *testing.T) {
	r := NewResolver()
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	got, ok := r.Resolve("nw", monday)
	if !ok || got != "2024-03-11" {
		t.Errorf("Resolve(nw) on a Monday = %q, %v; want 2024-03-11, true", got, ok)
	}
}

func TestResolveNextMonthYearRollover(t *testing.T) {
	r := NewResolver()
	december := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	got, ok := r.Resolve("nm", december)
	if !ok || got != "2025-01-01" {
		t.Errorf("Resolve(nm) in December = %q, %v; want 2025-01-01, true", got, ok)
	}
}

func TestResolveFallback(t *testing.T) {
	r := NewResolver()

	// Phrases outside the fixed grammar go through the English rules, but
	// only when the whole value parses as one date expression.
	got, ok := r.Resolve("next friday", refDay)
	if !ok {
		t.Fatal("Resolve(next friday) not recognized")
	}
	d, err := time.Parse("2006-01-02", got)
	if err != nil {
		t.Fatalf("Resolve(next friday) = %q, not an ISO date", got)
	}
	if d.Weekday() != time.Friday || !d.After(refDay) {
		t.Errorf("Resolve(next friday) = %q, want a Friday after %s", got, refDay.Format("2006-01-02"))
	}

	if got, ok := r.Resolve("call bob on friday", refDay); ok {
		t.Errorf("Resolve(call bob on friday) = %q, true; want partial matches rejected", got)
	}
}
