package summary

import (
	"testing"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/datetime"
)

func monthly(amount float64, start string) loan.Payment {
	return loan.Payment{
		Type:       loan.Scheduled,
		Amount:     amount,
		StartDate:  datetime.MustParseTime("2006-01-02", start),
		Frequency:  1,
		DayOfMonth: 1,
	}
}

func TestComputeGroupsByKindAndCurrency(t *testing.T) {
	reporter := NewReporter(nil, nil)
	loans := []loan.Loan{
		{
			Name:          "Mortgage",
			Kind:          loan.KindBorrow,
			StartDate:     datetime.MustParseTime("2006-01-02", "2025-01-01"),
			InitialAmount: 120000,
			Payments:      []loan.Payment{monthly(1000, "2025-01-01")},
		},
		{
			Name:          "Car",
			Kind:          loan.KindBorrow,
			StartDate:     datetime.MustParseTime("2006-01-02", "2025-01-01"),
			InitialAmount: 24000,
			Payments:      []loan.Payment{monthly(500, "2025-01-01")},
		},
		{
			Name:          "Friend",
			Kind:          loan.KindLend,
			Currency:      "EUR",
			StartDate:     datetime.MustParseTime("2006-01-02", "2025-01-01"),
			InitialAmount: 6000,
			Payments:      []loan.Payment{monthly(250, "2025-01-01")},
		},
	}

	asOf := datetime.MustParseTime("2006-01-02", "2025-03-15")
	got := reporter.Compute(loans, asOf, nil)

	if len(got.Borrowing) != 1 {
		t.Fatalf("Borrowing groups = %d, expected 1", len(got.Borrowing))
	}
	borrow := got.Borrowing[0]
	if borrow.Currency != "SEK" {
		t.Errorf("borrowing currency = %s, expected the SEK default", borrow.Currency)
	}
	if borrow.Count != 2 {
		t.Errorf("borrowing count = %d, expected 2", borrow.Count)
	}
	if borrow.MonthlyTotal != 1500 {
		t.Errorf("borrowing MonthlyTotal = %.2f, expected 1500", borrow.MonthlyTotal)
	}
	// The current row is March, after three zero-interest payments.
	if borrow.DebtTotal != (120000-3000)+(24000-1500) {
		t.Errorf("borrowing DebtTotal = %.2f, expected 139500", borrow.DebtTotal)
	}

	if len(got.Lending) != 1 {
		t.Fatalf("Lending groups = %d, expected 1", len(got.Lending))
	}
	lend := got.Lending[0]
	if lend.Currency != "EUR" || lend.Count != 1 {
		t.Errorf("lending group = %+v, expected one EUR loan", lend)
	}
	if lend.DebtTotal != 6000-750 {
		t.Errorf("lending DebtTotal = %.2f, expected 5250", lend.DebtTotal)
	}
}

func TestComputeExcludesByName(t *testing.T) {
	reporter := NewReporter(nil, nil)
	loans := []loan.Loan{
		{
			Name:          "Kept",
			StartDate:     datetime.MustParseTime("2006-01-02", "2025-01-01"),
			InitialAmount: 1000,
			Payments:      []loan.Payment{monthly(100, "2025-01-01")},
		},
		{
			Name:          "Dropped",
			StartDate:     datetime.MustParseTime("2006-01-02", "2025-01-01"),
			InitialAmount: 9000,
			Payments:      []loan.Payment{monthly(100, "2025-01-01")},
		},
	}

	got := reporter.Compute(loans, datetime.MustParseTime("2006-01-02", "2025-01-15"), []string{"Dropped"})
	if len(got.Borrowing) != 1 {
		t.Fatalf("Borrowing groups = %d, expected 1", len(got.Borrowing))
	}
	if got.Borrowing[0].Count != 1 {
		t.Errorf("count = %d, expected the excluded loan skipped", got.Borrowing[0].Count)
	}
	if got.Borrowing[0].DebtTotal != 900 {
		t.Errorf("DebtTotal = %.2f, expected 900 after the January payment", got.Borrowing[0].DebtTotal)
	}
}

func TestComputeDatelessLoanFallsBackToPrincipal(t *testing.T) {
	reporter := NewReporter(nil, nil)
	loans := []loan.Loan{
		{
			Name:          "Paper loan",
			InitialAmount: 5000,
			Changes: []loan.Change{
				{Date: datetime.MustParseTime("2006-01-02", "2025-02-01"), Amount: 1500},
			},
		},
	}

	got := reporter.Compute(loans, datetime.MustParseTime("2006-01-02", "2025-06-01"), nil)
	if len(got.Borrowing) != 1 {
		t.Fatalf("Borrowing groups = %d, expected 1", len(got.Borrowing))
	}
	totals := got.Borrowing[0]
	if totals.DebtTotal != 6500 {
		t.Errorf("DebtTotal = %.2f, expected principal plus adjustments", totals.DebtTotal)
	}
	if totals.MonthlyTotal != 0 {
		t.Errorf("MonthlyTotal = %.2f, expected 0 without a timeline", totals.MonthlyTotal)
	}
}
