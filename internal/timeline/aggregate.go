package timeline

import (
	"fmt"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/hoozter/lendpile/pkg/mathutil"
	"go.uber.org/zap"
)

// Breakdown labels for the recurrence cadences a payment rule can have.
// Rules sharing a cadence merge into one bucket; distinct cadences stay
// separate entries.
const (
	LabelOneTime   = "one-time"
	LabelMonthly   = "monthly"
	LabelBiMonthly = "bi-monthly"
	LabelTriMonthy = "tri-monthly"
	LabelWeekly    = "weekly"
)

// MonthPayment is the aggregated payment due in one calendar month.
type MonthPayment struct {
	Total     float64
	Breakdown map[string]float64
}

// MonthTotal sums every payment rule due in the given month into a total plus
// a per-cadence breakdown. Non-finite amounts are skipped.
func (e *Engine) MonthTotal(ln *loan.Loan, month datetime.Month) MonthPayment {
	breakdown := make(map[string]float64)
	monthStart := month.First()
	monthEnd := month.End()

	for _, rule := range ln.SortedPayments() {
		if !mathutil.IsFinite(rule.Amount) {
			e.logger.Debug("skipping payment rule with malformed amount",
				zap.String("loan", ln.Name),
				zap.String("month", month.String()),
			)
			continue
		}
		start := datetime.Truncate(rule.StartDate)

		if rule.Type == loan.OneTime {
			if month.Contains(start) {
				breakdown[LabelOneTime] += rule.Amount
			}
			continue
		}

		// Scheduled rules: skip if the window misses this month entirely.
		if start.After(monthEnd) {
			continue
		}
		if rule.EndDate != nil && monthStart.After(datetime.Truncate(*rule.EndDate)) {
			continue
		}

		if rule.Unit() == loan.UnitWeek {
			count := 0
			for _, d := range e.PaymentDates(rule) {
				if !d.Before(monthStart) && !d.After(monthEnd) {
					count++
				}
			}
			if count > 0 {
				breakdown[weeklyLabel(rule.Every())] += rule.Amount * float64(count)
			}
			continue
		}

		monthsDiff := month.Index() - datetime.MonthOf(start).Index()
		if monthsDiff >= 0 && monthsDiff%rule.Every() == 0 {
			breakdown[monthlyLabel(rule.Every())] += rule.Amount
		}
	}

	total := 0.0
	for _, amount := range breakdown {
		total += amount
	}
	return MonthPayment{Total: total, Breakdown: breakdown}
}

func weeklyLabel(frequency int) string {
	if frequency == 1 {
		return LabelWeekly
	}
	return fmt.Sprintf("every %d weeks", frequency)
}

func monthlyLabel(frequency int) string {
	switch frequency {
	case 1:
		return LabelMonthly
	case 2:
		return LabelBiMonthly
	case 3:
		return LabelTriMonthy
	default:
		return fmt.Sprintf("every %d months", frequency)
	}
}
