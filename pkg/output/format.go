// Package output provides utilities for formatting and displaying timelines.
package output

import (
	"fmt"
	"strings"

	"github.com/hoozter/lendpile/internal/timeline"
	"github.com/hoozter/lendpile/pkg/datetime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(name string, rows []timeline.Row) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Timeline for loan %s ---\n", name)
	fmt.Printf("Date    | Payment date | Starting debt | Rate   | Interest   | Payment    | Amortization | Ending debt   | Notes\n")
	fmt.Printf("____    | ____________ | _____________ | ____   | ________   | _______    | ____________ | ___________   | _____\n")
	for _, row := range rows {
		_, _ = p.Printf("%s | %s   | %.2f | %.2f%% | %.2f | %.2f | %.2f | %.2f | %s\n",
			row.Date.String(),
			row.PaymentDate.Format(datetime.DayLayout),
			row.StartingDebt,
			row.InterestRate,
			row.Interest,
			row.Payment,
			row.Amortization,
			row.EndingDebt,
			strings.Join(rowNotes(row), ","),
		)
	}
	fmt.Printf("\n")
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(name string, rows []timeline.Row) {
	fmt.Printf(`"date","paymentDate","startingDebt","interestRate","interest","payment","amortization","endingDebt","notes (%s)"`, name)
	fmt.Printf("\n")
	for _, row := range rows {
		fmt.Printf(`"%s","%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`,
			row.Date.String(),
			row.PaymentDate.Format(datetime.DayLayout),
			row.StartingDebt,
			row.InterestRate,
			row.Interest,
			row.Payment,
			row.Amortization,
			row.EndingDebt,
			strings.Join(rowNotes(row), ","),
		)
		fmt.Printf("\n")
	}
}

func rowNotes(row timeline.Row) []string {
	var notes []string
	for _, change := range row.Changes {
		switch change.Type {
		case timeline.ChangeInterest:
			notes = append(notes, fmt.Sprintf("rate now %.2f%%", change.Value))
		case timeline.ChangeLoan:
			notes = append(notes, fmt.Sprintf("principal change %+.2f", change.Value))
		}
	}
	if row.IsOverpayment {
		notes = append(notes, fmt.Sprintf("overpayment, %.2f needed", row.ActualNeeded))
	}
	return notes
}
