package timeline

import (
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/constants"
	"github.com/hoozter/lendpile/pkg/datetime"
)

// PaymentDates expands a payment rule into its concrete due dates, sorted
// ascending and bounded to the payoff horizon. The expansion is pure: repeated
// calls with the same rule yield identical sequences.
func (e *Engine) PaymentDates(rule loan.Payment) []time.Time {
	start := datetime.Truncate(rule.StartDate)
	var end time.Time
	if rule.EndDate != nil {
		end = datetime.Truncate(*rule.EndDate)
	}
	// endDate bounds are inclusive
	pastEnd := func(t time.Time) bool {
		return rule.EndDate != nil && t.After(end)
	}

	if rule.Unit() == loan.UnitWeek {
		return weeklyDates(start, rule.Every(), pastEnd)
	}
	if rule.LastWeekdayOfMonth {
		return lastBusinessDates(start, pastEnd)
	}
	return monthlyDates(start, rule.AnchorDay(), rule.Every(), pastEnd)
}

func weeklyDates(start time.Time, frequency int, pastEnd func(time.Time) bool) []time.Time {
	step := frequency * 7
	var dates []time.Time
	for offset := 0; offset < constants.WeeklyHorizonDays; offset += step {
		d := start.AddDate(0, 0, offset)
		if pastEnd(d) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}

func lastBusinessDates(start time.Time, pastEnd func(time.Time) bool) []time.Time {
	month := datetime.MonthOf(start)
	var dates []time.Time
	for i := 0; i < constants.TimelineHorizonMonths; i++ {
		d := month.LastBusinessDay()
		if !d.Before(start) {
			if pastEnd(d) {
				break
			}
			dates = append(dates, d)
		}
		month = month.AddMonths(1)
	}
	return dates
}

func monthlyDates(start time.Time, day, frequency int, pastEnd func(time.Time) bool) []time.Time {
	startMonth := datetime.MonthOf(start)
	var dates []time.Time
	for offset := 0; offset < constants.TimelineHorizonMonths; offset += frequency {
		d := startMonth.AddMonths(offset).Day(day)
		if d.Before(start) {
			continue
		}
		if pastEnd(d) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}
