package task

import "time"

// addDelta advances base by the recurrence interval. Month and year steps
// use calendar arithmetic via time.Time.AddDate, which normalizes overflow:
// 2024-01-31 plus one month is 2024-03-02, not a clamped 2024-02-29.
func addDelta(base time.Time, r Recurrence) time.Time {
	switch r.Unit {
	case 'd':
		return base.AddDate(0, 0, r.Amount)
	case 'w':
		return base.AddDate(0, 0, 7*r.Amount)
	case 'm':
		return base.AddDate(0, r.Amount, 0)
	case 'y':
		return base.AddDate(r.Amount, 0, 0)
	}
	return base
}

// Advance computes the next due and threshold dates for a recurring task
// completed on the given date. It returns ok=false when the task carries no
// valid rec: rule.
//
// A strict rule (+N) advances from the task's prior schedule regardless of
// when it was actually completed, so a late completion still catches up from
// where it was due. A non-strict rule advances from the completion date; if
// the task had both a due and a threshold date, the day gap between them is
// preserved on the new schedule.
func Advance(t Task, completion time.Time) (due, threshold string, ok bool) {
	r, ok := t.Recurrence()
	if !ok {
		return "", "", false
	}

	oldDue, hasDue := t.DueTime()
	oldThreshold, hasThreshold := t.ThresholdTime()

	if r.Strict {
		if hasDue {
			due = addDelta(oldDue, r).Format(DateLayout)
		}
		if hasThreshold {
			threshold = addDelta(oldThreshold, r).Format(DateLayout)
		}
		return due, threshold, true
	}

	newDue := addDelta(completion, r)
	due = newDue.Format(DateLayout)
	if hasDue && hasThreshold {
		gapDays := int(oldDue.Sub(oldThreshold).Hours() / 24)
		threshold = newDue.AddDate(0, 0, -gapDays).Format(DateLayout)
	}
	return due, threshold, true
}
