// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/hoozter/lendpile/pkg/constants"
)

const (
	// DayLayout is the format expected for dates in config files and API
	// payloads.
	DayLayout = constants.DayLayout

	// MonthLayout is the month-granularity format.
	MonthLayout = constants.MonthLayout
)

// Month is an immutable calendar month. Timeline iteration advances by
// constructing new Month values rather than mutating a date in place.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// AddMonths returns the month n months after m, normalized across year
// boundaries.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// Index returns a total ordering of months as a single integer.
func (m Month) Index() int {
	return m.Year*constants.MonthsPerYear + int(m.Month) - 1
}

// Before reports whether m precedes o.
func (m Month) Before(o Month) bool {
	return m.Index() < o.Index()
}

// After reports whether m follows o.
func (m Month) After(o Month) bool {
	return m.Index() > o.Index()
}

// First returns midnight UTC on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the month.
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// LastDay returns the number of days in the month.
func (m Month) LastDay() int {
	return m.End().Day()
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Day returns midnight UTC on the given day of the month, clamped to the last
// day when the month is shorter (e.g. day 31 in February).
func (m Month) Day(day int) time.Time {
	if last := m.LastDay(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// LastBusinessDay returns the last calendar day of the month shifted off the
// weekend: Saturday moves back one day, Sunday moves back two.
func (m Month) LastBusinessDay() time.Time {
	last := m.End()
	switch last.Weekday() {
	case time.Sunday:
		return last.AddDate(0, 0, -2)
	case time.Saturday:
		return last.AddDate(0, 0, -1)
	default:
		return last
	}
}

// String renders the month in MonthLayout.
func (m Month) String() string {
	return m.First().Format(MonthLayout)
}

// MarshalJSON renders the month as a quoted MonthLayout string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON parses a quoted MonthLayout string.
func (m *Month) UnmarshalJSON(data []byte) error {
	t, err := time.Parse(`"`+MonthLayout+`"`, string(data))
	if err != nil {
		return err
	}
	*m = MonthOf(t)
	return nil
}
