// Package loan defines the plain data records the timeline engine consumes.
// The engine never mutates a Loan; it only reads it.
package loan

import (
	"sort"
	"time"

	"github.com/hoozter/lendpile/pkg/constants"
)

// Kind distinguishes money owed by the caller from money owed to the caller.
type Kind string

const (
	KindBorrow Kind = "borrow"
	KindLend   Kind = "lend"
)

// PaymentType selects between the two payment rule variants.
type PaymentType string

const (
	OneTime   PaymentType = "one-time"
	Scheduled PaymentType = "scheduled"
)

// FrequencyUnit is the recurrence unit of a scheduled payment.
type FrequencyUnit string

const (
	UnitMonth FrequencyUnit = "month"
	UnitWeek  FrequencyUnit = "week"
)

// Loan is one loan record with its rate changes, principal adjustments, and
// payment rules.
type Loan struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name"`
	Kind            Kind             `json:"kind,omitempty"`
	StartDate       time.Time        `json:"startDate"`
	InitialAmount   float64          `json:"initialAmount"`
	InterestRate    float64          `json:"interestRate"`
	Currency        string           `json:"currency,omitempty"`
	InterestChanges []InterestChange `json:"interestChanges,omitempty"`
	Changes         []Change         `json:"loanChanges,omitempty"`
	Payments        []Payment        `json:"payments,omitempty"`
}

// InterestChange sets the annual nominal rate effective from the month
// containing Date until superseded.
type InterestChange struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// Change is a one-time signed adjustment to outstanding principal. Positive
// amounts draw down further debt, negative amounts reduce it.
type Change struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Payment is a payment rule: either a single extra payment or a recurring
// schedule. A monthly schedule anchors to exactly one of DayOfMonth or
// LastWeekdayOfMonth; a weekly schedule implicitly anchors to the weekday of
// StartDate.
type Payment struct {
	Type               PaymentType   `json:"type"`
	Amount             float64       `json:"amount"`
	StartDate          time.Time     `json:"startDate"`
	EndDate            *time.Time    `json:"endDate,omitempty"`
	FrequencyUnit      FrequencyUnit `json:"frequencyUnit,omitempty"`
	Frequency          int           `json:"frequency,omitempty"`
	DayOfMonth         int           `json:"dayOfMonth,omitempty"`
	LastWeekdayOfMonth bool          `json:"lastWeekdayOfMonth,omitempty"`
}

// Unit returns the recurrence unit, defaulting to months.
func (p Payment) Unit() FrequencyUnit {
	if p.FrequencyUnit == UnitWeek {
		return UnitWeek
	}
	return UnitMonth
}

// Every returns the recurrence frequency, defaulting to 1.
func (p Payment) Every() int {
	if p.Frequency < 1 {
		return constants.DefaultFrequency
	}
	return p.Frequency
}

// AnchorDay returns the day-of-month anchor, defaulting to the calendar day of
// the rule's start date.
func (p Payment) AnchorDay() int {
	if p.DayOfMonth > 0 {
		return p.DayOfMonth
	}
	return p.StartDate.Day()
}

// Covers reports whether the rule's [StartDate, EndDate] window contains t.
func (p Payment) Covers(t time.Time) bool {
	if p.StartDate.After(t) {
		return false
	}
	return p.EndDate == nil || !p.EndDate.Before(t)
}

// CurrencyOrDefault returns the loan currency, defaulting when unset.
func (l *Loan) CurrencyOrDefault() string {
	if l.Currency == "" {
		return constants.DefaultCurrency
	}
	return l.Currency
}

// SortedInterestChanges returns the interest changes ordered by date. Storage
// order is unspecified, so callers sort before use.
func (l *Loan) SortedInterestChanges() []InterestChange {
	out := make([]InterestChange, len(l.InterestChanges))
	copy(out, l.InterestChanges)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortedChanges returns the principal adjustments ordered by date.
func (l *Loan) SortedChanges() []Change {
	out := make([]Change, len(l.Changes))
	copy(out, l.Changes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortedPayments returns the payment rules with one-time entries first, then
// scheduled entries by ascending start date. The ordering only affects
// breakdown presentation, not totals.
func (l *Loan) SortedPayments() []Payment {
	out := make([]Payment, len(l.Payments))
	copy(out, l.Payments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == OneTime
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
