// Package summary aggregates current balances and payments across a set of
// loans, grouped by currency and by whether money is owed or incoming.
package summary

import (
	"sort"
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/internal/timeline"
	"github.com/hoozter/lendpile/pkg/datetime"
	"go.uber.org/zap"
)

// Totals holds the accumulated figures for one currency.
type Totals struct {
	Currency     string  `json:"currency"`
	MonthlyTotal float64 `json:"monthlyTotal"`
	DebtTotal    float64 `json:"debtTotal"`
	Count        int     `json:"count"`
}

// Summary is the portfolio-wide aggregation, split by loan kind.
type Summary struct {
	Borrowing []Totals `json:"borrowing"`
	Lending   []Totals `json:"lending"`
}

// Reporter computes portfolio summaries from loan timelines.
type Reporter struct {
	logger *zap.Logger
	engine *timeline.Engine
}

// NewReporter creates a Reporter backed by the given engine.
func NewReporter(logger *zap.Logger, engine *timeline.Engine) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = timeline.NewEngine(logger)
	}
	return &Reporter{logger: logger, engine: engine}
}

// Compute builds each loan's timeline and accumulates, per currency, the
// current monthly payment and remaining debt as of asOf. Loans named in
// excluded are skipped.
func (r *Reporter) Compute(loans []loan.Loan, asOf time.Time, excluded []string) Summary {
	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}

	borrow := make(map[string]*Totals)
	lend := make(map[string]*Totals)

	for i := range loans {
		ln := &loans[i]
		if _, ok := skip[ln.Name]; ok {
			continue
		}

		monthly, debt := r.currentFigures(ln, asOf)
		byCurrency := borrow
		if ln.Kind == loan.KindLend {
			byCurrency = lend
		}
		currency := ln.CurrencyOrDefault()
		totals, ok := byCurrency[currency]
		if !ok {
			totals = &Totals{Currency: currency}
			byCurrency[currency] = totals
		}
		totals.MonthlyTotal += monthly
		totals.DebtTotal += debt
		totals.Count++
	}

	return Summary{Borrowing: flatten(borrow), Lending: flatten(lend)}
}

// currentFigures picks the loan's current row: the latest row dated before
// asOf, else the first row. A loan with no timeline reports its initial amount
// plus all principal adjustments.
func (r *Reporter) currentFigures(ln *loan.Loan, asOf time.Time) (monthly, debt float64) {
	rows := r.engine.BuildTimeline(ln)
	if len(rows) == 0 {
		debt = ln.InitialAmount
		for _, change := range ln.Changes {
			debt += change.Amount
		}
		return 0, debt
	}

	today := datetime.Truncate(asOf)
	current := rows[0]
	for _, row := range rows {
		if !row.Date.First().Before(today) {
			break
		}
		current = row
	}
	return current.Payment, current.EndingDebt
}

func flatten(byCurrency map[string]*Totals) []Totals {
	out := make([]Totals, 0, len(byCurrency))
	for _, totals := range byCurrency {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
