package datetime

import (
	"fmt"
	"time"
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a date at day or month granularity. Month-granularity input
// resolves to the first day of the month. The result is midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	for _, layout := range []string{DayLayout, MonthLayout} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected %s or %s", dateStr, DayLayout, MonthLayout)
}

// Truncate strips the time-of-day component, yielding midnight UTC on the same
// calendar day.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
