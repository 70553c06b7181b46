package timeline

import (
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/constants"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/hoozter/lendpile/pkg/mathutil"
	"go.uber.org/zap"
)

// RequiredPayment bisects for the single recurring monthly payment that pays
// the loan off by (or before) the target date. The second return is false when
// the target month is not strictly after the loan's start month, which callers
// must surface as "cannot pay off by this date" rather than an error.
//
// Each bisection step runs a full timeline build, which dominates the cost;
// steps cannot run concurrently because each depends on the previous verdict.
func (e *Engine) RequiredPayment(ln *loan.Loan, targetDate time.Time) (float64, bool) {
	if ln.StartDate.IsZero() || targetDate.IsZero() {
		return 0, false
	}

	start := datetime.Truncate(ln.StartDate)
	target := datetime.Truncate(targetDate)
	targetMonth := datetime.MonthOf(target)
	if !targetMonth.After(datetime.MonthOf(start)) {
		return 0, false
	}

	dayOfMonth := start.Day()
	low := 0.0
	high := ln.InitialAmount*2 + constants.SolverBracketPad

	for iter := 0; iter < constants.SolverIterations; iter++ {
		candidate := (low + high) / 2

		trial := *ln
		trial.Payments = []loan.Payment{{
			Type:       loan.Scheduled,
			Amount:     candidate,
			StartDate:  ln.StartDate,
			EndDate:    &target,
			Frequency:  1,
			DayOfMonth: dayOfMonth,
		}}

		timeline := e.BuildTimeline(&trial)
		if len(timeline) == 0 {
			low = candidate
			continue
		}

		last := timeline[len(timeline)-1]
		if last.EndingDebt > constants.PayoffResidualTolerance || last.Date.After(targetMonth) {
			low = candidate
		} else {
			high = candidate
		}
		if high-low < constants.SolverTolerance {
			break
		}
	}

	required := mathutil.CeilCents((low + high) / 2)
	e.logger.Debug("solved required payment for target date",
		zap.String("loan", ln.Name),
		zap.String("target", targetMonth.String()),
		zap.Float64("payment", required),
	)
	return required, true
}
