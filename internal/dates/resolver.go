// Package dates expands natural-language due-date shorthands to concrete
// ISO dates.
//
// The fixed shorthand grammar below is authoritative and matches the file
// format's documented behavior exactly. Values it does not recognize are
// offered to the olebedev/when English rules as a fallback; only a match
// that covers the whole value resolves. Anything else passes through
// untouched, so an unrecognized token is never an error.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const dateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dayMonthRe matches shorthands like 11dec and 1dec2027.
var dayMonthRe = regexp.MustCompile(`^(\d{1,2})([a-z]{3})(\d{4})?$`)

// Resolver expands due-date shorthands relative to a reference date.
type Resolver struct {
	nlp *when.Parser
}

// NewResolver returns a Resolver with the English fallback rules loaded.
func NewResolver() *Resolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Resolver{nlp: w}
}

// Resolve maps a due: tag value to an ISO date relative to today. It
// reports ok=false when the value is not recognized, in which case the
// caller must leave the original text untouched. A value that already is a
// concrete ISO date resolves to itself.
func (r *Resolver) Resolve(value string, today time.Time) (string, bool) {
	today = truncate(today)
	if _, err := time.Parse(dateLayout, value); err == nil && len(value) == len(dateLayout) {
		return value, true
	}

	v := strings.ToLower(value)
	switch v {
	case "tod", "today":
		return today.Format(dateLayout), true
	case "tom", "tomorrow":
		return today.AddDate(0, 0, 1).Format(dateLayout), true
	case "nw", "nextweek":
		// Upcoming Monday; a full week ahead when today already is Monday.
		days := 7 - mondayBased(today.Weekday())
		return today.AddDate(0, 0, days).Format(dateLayout), true
	case "nm", "nextmonth":
		first := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return first.Format(dateLayout), true
	}

	if wd, ok := weekdays[v]; ok {
		// The next occurrence strictly after today: asking for today's
		// weekday rolls a full week forward, never resolving to today.
		days := (mondayBased(wd) - mondayBased(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days).Format(dateLayout), true
	}

	if m := dayMonthRe.FindStringSubmatch(v); m != nil {
		if d, ok := resolveDayMonth(m, today); ok {
			return d, true
		}
		return "", false
	}

	return r.fallback(value, today)
}

// resolveDayMonth handles the day+month[+year] shorthand. With the year
// omitted, a month/day already past this year rolls to next year.
func resolveDayMonth(m []string, today time.Time) (string, bool) {
	day := 0
	for _, c := range m[1] {
		day = day*10 + int(c-'0')
	}
	month, ok := months[m[2]]
	if !ok {
		return "", false
	}

	year := today.Year()
	if m[3] != "" {
		year = 0
		for _, c := range m[3] {
			year = year*10 + int(c-'0')
		}
	} else if month < today.Month() || (month == today.Month() && day < today.Day()) {
		year++
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
	if d.Day() != day || d.Month() != month {
		return "", false // e.g. 31feb; time.Date would normalize it away
	}
	return d.Format(dateLayout), true
}

// fallback hands the value to the when parser. Only a match that starts at
// the first byte and consumes the whole value counts, so free text that
// merely contains a date word is never rewritten.
func (r *Resolver) fallback(value string, today time.Time) (string, bool) {
	res, err := r.nlp.Parse(value, today)
	if err != nil || res == nil {
		return "", false
	}
	if res.Index != 0 || len(res.Text) != len(value) {
		return "", false
	}
	return truncate(res.Time).Format(dateLayout), true
}

// mondayBased converts Go's Sunday-based weekday to Monday=0.
func mondayBased(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
