// Package period buckets transactions into accounting periods and
// computes trend statistics over them. Periods are derived purely from
// a reference time, a mode, and a count; they are never persisted.
package period

import (
	"fmt"
	"time"
)

// Mode selects the period boundary rule.
type Mode string

const (
	// ModeCalendar is a full calendar month.
	ModeCalendar Mode = "calendar"
	// ModeBilling runs from the 10th of one month to the 9th of the
	// next, matching Israeli credit-card billing cycles.
	ModeBilling Mode = "billing"
)

// cycleDay is the billing-cycle cutoff day of month.
const cycleDay = 10

// ParseMode maps a settings string to a Mode, silently falling back to
// calendar for anything it does not recognize.
func ParseMode(s string) Mode {
	if Mode(s) == ModeBilling {
		return ModeBilling
	}
	return ModeCalendar
}

// Definition is one accounting period. Key is the YYYY-MM of the
// period's start; End is inclusive.
type Definition struct {
	Key       string
	Label     string
	Start     time.Time
	End       time.Time
	IsCurrent bool
}

// Contains reports whether the date falls inside the period.
func (d Definition) Contains(date time.Time) bool {
	return !date.Before(d.Start) && !date.After(d.End)
}

// Build returns count periods ending at the period containing ref,
// oldest first.
func Build(mode Mode, ref time.Time, count int) []Definition {
	if count <= 0 {
		return nil
	}
	current := startOf(mode, ref)
	defs := make([]Definition, 0, count)
	for i := count - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)
		defs = append(defs, Definition{
			Key:       start.Format("2006-01"),
			Label:     label(mode, start, end),
			Start:     start,
			End:       end,
			IsCurrent: i == 0,
		})
	}
	return defs
}

// Key maps a date to the key of the period containing it.
func Key(date time.Time, mode Mode) string {
	return startOf(mode, date).Format("2006-01")
}

// startOf returns the start of the period containing the date. In
// billing mode a day-of-month before the cutoff belongs to the cycle
// that started the previous month.
func startOf(mode Mode, date time.Time) time.Time {
	y, m, d := date.Date()
	if mode != ModeBilling {
		return time.Date(y, m, 1, 0, 0, 0, 0, date.Location())
	}
	start := time.Date(y, m, cycleDay, 0, 0, 0, 0, date.Location())
	if d < cycleDay {
		start = start.AddDate(0, -1, 0)
	}
	return start
}

func label(mode Mode, start, end time.Time) string {
	if mode == ModeBilling {
		return fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	}
	return start.Format("January 2006")
}
