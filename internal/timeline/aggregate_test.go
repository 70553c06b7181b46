package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/datetime"
)

func TestMonthTotalWeeklyOccurrences(t *testing.T) {
	engine := NewEngine(nil)
	ln := &loan.Loan{
		Name:      "Weekly loan",
		StartDate: day("2026-06-01"),
		Payments: []loan.Payment{
			{
				Type:          loan.Scheduled,
				Amount:        100,
				StartDate:     day("2026-06-01"), // a Monday
				FrequencyUnit: loan.UnitWeek,
				Frequency:     1,
			},
		},
	}

	tests := []struct {
		name     string
		month    datetime.Month
		expected float64
	}{
		{
			name:     "Five-Monday month",
			month:    datetime.Month{Year: 2026, Month: time.June},
			expected: 500,
		},
		{
			name:     "Four-Monday month",
			month:    datetime.Month{Year: 2026, Month: time.July},
			expected: 400,
		},
		{
			name:     "Before the rule starts",
			month:    datetime.Month{Year: 2026, Month: time.May},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MonthTotal(ln, tt.month)
			if got.Total != tt.expected {
				t.Errorf("MonthTotal() = %.2f, expected %.2f", got.Total, tt.expected)
			}
			if tt.expected > 0 && got.Breakdown[LabelWeekly] != tt.expected {
				t.Errorf("Breakdown[%s] = %.2f, expected %.2f", LabelWeekly, got.Breakdown[LabelWeekly], tt.expected)
			}
		})
	}
}

func TestMonthTotalMonthlyCadence(t *testing.T) {
	engine := NewEngine(nil)
	ln := &loan.Loan{
		Name:      "Cadence loan",
		StartDate: day("2025-01-01"),
		Payments: []loan.Payment{
			{
				Type:       loan.Scheduled,
				Amount:     300,
				StartDate:  day("2025-01-01"),
				Frequency:  2,
				DayOfMonth: 1,
			},
		},
	}

	tests := []struct {
		name     string
		month    datetime.Month
		expected float64
	}{
		{
			name:     "Start month is due",
			month:    datetime.Month{Year: 2025, Month: time.January},
			expected: 300,
		},
		{
			name:     "Off-cadence month is skipped",
			month:    datetime.Month{Year: 2025, Month: time.February},
			expected: 0,
		},
		{
			name:     "Next cadence month is due",
			month:    datetime.Month{Year: 2025, Month: time.March},
			expected: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MonthTotal(ln, tt.month)
			if got.Total != tt.expected {
				t.Errorf("MonthTotal() = %.2f, expected %.2f", got.Total, tt.expected)
			}
			if tt.expected > 0 && got.Breakdown[LabelBiMonthly] != tt.expected {
				t.Errorf("Breakdown[%s] = %.2f, expected %.2f", LabelBiMonthly, got.Breakdown[LabelBiMonthly], tt.expected)
			}
		})
	}
}

func TestMonthTotalMixedRulesMergeByCadence(t *testing.T) {
	engine := NewEngine(nil)
	end := day("2025-12-31")
	ln := &loan.Loan{
		Name:      "Mixed loan",
		StartDate: day("2025-01-01"),
		Payments: []loan.Payment{
			{
				Type:       loan.Scheduled,
				Amount:     200,
				StartDate:  day("2025-01-01"),
				EndDate:    &end,
				Frequency:  1,
				DayOfMonth: 1,
			},
			{
				Type:       loan.Scheduled,
				Amount:     150,
				StartDate:  day("2025-01-15"),
				Frequency:  1,
				DayOfMonth: 15,
			},
			{
				Type:      loan.OneTime,
				Amount:    1000,
				StartDate: day("2025-03-10"),
			},
		},
	}

	march := engine.MonthTotal(ln, datetime.Month{Year: 2025, Month: time.March})
	if march.Total != 1350 {
		t.Errorf("MonthTotal() = %.2f, expected 1350", march.Total)
	}
	// Two monthly rules merge into the same bucket; the one-time stays apart.
	if march.Breakdown[LabelMonthly] != 350 {
		t.Errorf("Breakdown[%s] = %.2f, expected 350", LabelMonthly, march.Breakdown[LabelMonthly])
	}
	if march.Breakdown[LabelOneTime] != 1000 {
		t.Errorf("Breakdown[%s] = %.2f, expected 1000", LabelOneTime, march.Breakdown[LabelOneTime])
	}

	// After the first rule's end date only the open-ended rule contributes.
	january := engine.MonthTotal(ln, datetime.Month{Year: 2026, Month: time.January})
	if january.Total != 150 {
		t.Errorf("MonthTotal() = %.2f, expected 150", january.Total)
	}
}

func TestMonthTotalSkipsMalformedAmounts(t *testing.T) {
	engine := NewEngine(nil)
	ln := &loan.Loan{
		Name:      "NaN loan",
		StartDate: day("2025-01-01"),
		Payments: []loan.Payment{
			{
				Type:      loan.OneTime,
				Amount:    math.NaN(),
				StartDate: day("2025-01-10"),
			},
			{
				Type:      loan.OneTime,
				Amount:    250,
				StartDate: day("2025-01-20"),
			},
		},
	}

	got := engine.MonthTotal(ln, datetime.Month{Year: 2025, Month: time.January})
	if got.Total != 250 {
		t.Errorf("MonthTotal() = %.2f, expected 250 with NaN rule skipped", got.Total)
	}
}
