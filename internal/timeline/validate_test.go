package timeline

import (
	"testing"

	"github.com/hoozter/lendpile/internal/loan"
)

func TestValidatePayment(t *testing.T) {
	engine := NewEngine(nil)
	existing := monthlyRule(500, "2025-01-01", 1)
	ln := &loan.Loan{
		Name:      "Validated loan",
		StartDate: day("2025-01-01"),
		Payments:  []loan.Payment{existing},
	}

	tests := []struct {
		name         string
		candidate    loan.Payment
		excludeIndex int
		valid        bool
	}{
		{
			name:         "Identical schedule collides",
			candidate:    monthlyRule(200, "2025-01-01", 1),
			excludeIndex: -1,
			valid:        false,
		},
		{
			name:         "Different day of month is fine",
			candidate:    monthlyRule(200, "2025-01-01", 15),
			excludeIndex: -1,
			valid:        true,
		},
		{
			name: "One-time never conflicts",
			candidate: loan.Payment{
				Type:      loan.OneTime,
				Amount:    200,
				StartDate: day("2025-01-01"),
			},
			excludeIndex: -1,
			valid:        true,
		},
		{
			name:         "Editing a rule skips itself",
			candidate:    monthlyRule(750, "2025-01-01", 1),
			excludeIndex: 0,
			valid:        true,
		},
		{
			name: "Bi-monthly sharing due months collides",
			candidate: loan.Payment{
				Type:       loan.Scheduled,
				Amount:     200,
				StartDate:  day("2025-01-01"),
				Frequency:  2,
				DayOfMonth: 1,
			},
			excludeIndex: -1,
			valid:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := engine.ValidatePayment(ln, tt.candidate, tt.excludeIndex)
			if verdict.Valid != tt.valid {
				t.Errorf("ValidatePayment() valid = %v, expected %v (reason %q)",
					verdict.Valid, tt.valid, verdict.Reason)
			}
			if !tt.valid && verdict.Reason == "" {
				t.Error("rejection carries no reason")
			}
		})
	}
}

func TestValidatePaymentWeeklyAgainstMonthly(t *testing.T) {
	engine := NewEngine(nil)
	ln := &loan.Loan{
		Name:      "Mixed cadence loan",
		StartDate: day("2026-06-01"),
		Payments:  []loan.Payment{monthlyRule(500, "2026-06-01", 1)},
	}

	// A weekly rule anchored on the monthly due date lands on 2026-06-01, a
	// shared concrete date, so it must be rejected.
	weekly := loan.Payment{
		Type:          loan.Scheduled,
		Amount:        100,
		StartDate:     day("2026-06-01"),
		FrequencyUnit: loan.UnitWeek,
		Frequency:     1,
	}
	if verdict := engine.ValidatePayment(ln, weekly, -1); verdict.Valid {
		t.Error("weekly rule sharing a concrete date was accepted")
	}

	// Shifted off the monthly anchor the weekly dates only rarely coincide,
	// but a Tuesday cadence still hits the 1st eventually; use a bounded end
	// to keep the expansions disjoint.
	end := day("2026-06-30")
	shifted := loan.Payment{
		Type:          loan.Scheduled,
		Amount:        100,
		StartDate:     day("2026-06-02"),
		EndDate:       &end,
		FrequencyUnit: loan.UnitWeek,
		Frequency:     1,
	}
	if verdict := engine.ValidatePayment(ln, shifted, -1); !verdict.Valid {
		t.Errorf("disjoint weekly rule was rejected: %s", verdict.Reason)
	}
}
