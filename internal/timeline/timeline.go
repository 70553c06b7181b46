package timeline

import (
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/constants"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/hoozter/lendpile/pkg/mathutil"
	"go.uber.org/zap"
)

// ChangeType tags the markers a timeline row carries for events applied in
// that month.
type ChangeType string

const (
	ChangeInterest ChangeType = "interest"
	ChangeLoan     ChangeType = "loan"
)

// ChangeMarker records one interest-rate or principal change that took effect
// in a row's month.
type ChangeMarker struct {
	Type  ChangeType `json:"type"`
	Value float64    `json:"value"`
}

// Row is one month's accounting snapshot. Rows are immutable once produced;
// EndingDebt of row i equals StartingDebt of row i+1 and is never negative.
type Row struct {
	Date             datetime.Month     `json:"date"`
	PaymentDate      time.Time          `json:"paymentDate"`
	StartingDebt     float64            `json:"startingDebt"`
	InterestRate     float64            `json:"interestRate"`
	Changes          []ChangeMarker     `json:"changes,omitempty"`
	Interest         float64            `json:"interest"`
	Payment          float64            `json:"payment"`
	PaymentBreakdown map[string]float64 `json:"paymentBreakdown,omitempty"`
	Amortization     float64            `json:"amortization"`
	EndingDebt       float64            `json:"endingDebt"`
	IsOverpayment    bool               `json:"isOverpayment"`
	ActualNeeded     float64            `json:"actualNeeded,omitempty"`
}

// BuildTimeline walks the loan month by month from its start date, applying
// rate changes, principal changes, and aggregated payments until the balance
// reaches zero or the horizon is hit. A loan without a start date yields an
// empty timeline.
func (e *Engine) BuildTimeline(ln *loan.Loan) []Row {
	if ln.StartDate.IsZero() {
		return nil
	}

	start := datetime.Truncate(ln.StartDate)
	startMonth := datetime.MonthOf(start)
	anchorDay := start.Day()

	interestChanges := ln.SortedInterestChanges()
	principalChanges := ln.SortedChanges()
	icIndex, pcIndex := 0, 0

	currentDebt := ln.InitialAmount
	currentRate := ln.InterestRate

	// Rate changes dated before the start month are applied up front so the
	// initial rate reflects the latest of them.
	for icIndex < len(interestChanges) {
		if !datetime.MonthOf(interestChanges[icIndex].Date).Before(startMonth) {
			break
		}
		currentRate = interestChanges[icIndex].Rate
		icIndex++
	}

	var timeline []Row
	// A rate change observed in month M keeps the old rate for M's interest;
	// the new rate is buffered here and swapped in at the start of M+1.
	var pendingRate *float64

	month := startMonth
	for months := 0; months < constants.TimelineHorizonMonths && currentDebt > 0; months++ {
		var changes []ChangeMarker

		if pendingRate != nil {
			previous := currentRate
			currentRate = *pendingRate
			pendingRate = nil
			if previous != currentRate {
				changes = append(changes, ChangeMarker{Type: ChangeInterest, Value: currentRate})
			}
		}

		if icIndex < len(interestChanges) && month.Contains(interestChanges[icIndex].Date) {
			newRate := interestChanges[icIndex].Rate
			if newRate == currentRate {
				currentRate = newRate
			} else {
				pendingRate = &newRate
			}
			icIndex++
		}

		for pcIndex < len(principalChanges) {
			change := principalChanges[pcIndex]
			if datetime.MonthOf(change.Date).After(month) {
				break
			}
			currentDebt += change.Amount
			changes = append(changes, ChangeMarker{Type: ChangeLoan, Value: change.Amount})
			e.logger.Debug("applying principal change",
				zap.String("loan", ln.Name),
				zap.String("month", month.String()),
				zap.Float64("amount", change.Amount),
			)
			pcIndex++
		}

		startingDebt := currentDebt
		interest := startingDebt * currentRate / constants.PercentageMultiplier / constants.MonthsPerYear
		monthPayment := e.MonthTotal(ln, month)
		payment := monthPayment.Total

		principalPaid := mathutil.Clamp(payment-interest, 0, startingDebt)
		unpaidInterest := mathutil.Max(0, interest-payment)
		currentDebt = mathutil.Max(0, startingDebt-principalPaid+unpaidInterest)

		isOverpayment := false
		actualNeeded := 0.0
		if currentDebt == 0 && payment > startingDebt+interest {
			isOverpayment = true
			actualNeeded = startingDebt + interest
			payment = actualNeeded
		}

		timeline = append(timeline, Row{
			Date:             month,
			PaymentDate:      e.resolvePaymentDate(ln, month, anchorDay),
			StartingDebt:     startingDebt,
			InterestRate:     currentRate,
			Changes:          changes,
			Interest:         interest,
			Payment:          payment,
			PaymentBreakdown: monthPayment.Breakdown,
			Amortization:     principalPaid,
			EndingDebt:       currentDebt,
			IsOverpayment:    isOverpayment,
			ActualNeeded:     actualNeeded,
		})

		month = month.AddMonths(1)
	}

	return timeline
}

// resolvePaymentDate locates the concrete due date used in a month: the first
// in-month occurrence for a weekly rule, the last business day or the clamped
// anchor day for a monthly rule, or the 1st when no rule is active.
func (e *Engine) resolvePaymentDate(ln *loan.Loan, month datetime.Month, anchorDay int) time.Time {
	cursor := month.Day(anchorDay)

	var active *loan.Payment
	for i := range ln.Payments {
		if ln.Payments[i].Covers(cursor) {
			active = &ln.Payments[i]
			break
		}
	}
	if active == nil {
		return month.First()
	}

	if active.Unit() == loan.UnitWeek {
		for _, d := range e.PaymentDates(*active) {
			if month.Contains(d) {
				return d
			}
		}
		return month.First()
	}
	if active.LastWeekdayOfMonth {
		return month.LastBusinessDay()
	}
	return month.Day(active.AnchorDay())
}
