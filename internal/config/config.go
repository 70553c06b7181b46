// Package config defines the data structures related to the portfolio file
// and includes functions for loading and parsing it.
package config

import (
	"fmt"
	"time"

	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/spf13/viper"
)

// Portfolio holds everything a lendpile run needs: the loans plus logging and
// output settings.
type Portfolio struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Loans   []LoanConfig  `yaml:"loans"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoanConfig is the file representation of one loan. Dates are strings so the
// loader can coerce them defensively instead of failing the whole file.
type LoanConfig struct {
	ID              string
	Name            string
	Kind            string
	StartDate       string
	InitialAmount   float64
	InterestRate    float64
	Currency        string
	InterestChanges []InterestChangeConfig
	LoanChanges     []LoanChangeConfig
	Payments        []PaymentConfig
}

// InterestChangeConfig is the file representation of an interest change.
type InterestChangeConfig struct {
	Date string
	Rate float64
}

// LoanChangeConfig is the file representation of a principal adjustment.
type LoanChangeConfig struct {
	Date   string
	Amount float64
}

// PaymentConfig is the file representation of a payment rule.
type PaymentConfig struct {
	Type               string
	Amount             float64
	StartDate          string
	EndDate            string
	FrequencyUnit      string
	Frequency          int
	DayOfMonth         int
	LastWeekdayOfMonth bool
}

// LoadPortfolio takes a file path as input and loads the YAML-formatted
// portfolio there.
func LoadPortfolio(configPath string) (*Portfolio, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading portfolio file, %s", err)
	}

	var portfolio Portfolio
	err := viper.Unmarshal(&portfolio)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &portfolio, nil
}

// Convert turns the file representation into engine loan records, coercing
// malformed fields and collecting warnings instead of failing.
func (p *Portfolio) Convert() ([]loan.Loan, []string) {
	var warnings []string
	loans := make([]loan.Loan, 0, len(p.Loans))

	for _, lc := range p.Loans {
		ln, warns := ConvertLoan(lc)
		warnings = append(warnings, warns...)
		loans = append(loans, ln)
	}

	return loans, warnings
}

// ConvertLoan turns one loan's file or API representation into an engine
// record. A loan with an unparseable start date is kept (its timeline will be
// empty) and warned about.
func ConvertLoan(lc LoanConfig) (loan.Loan, []string) {
	var warnings []string

	ln := loan.Loan{
		ID:            lc.ID,
		Name:          lc.Name,
		Kind:          loan.Kind(lc.Kind),
		InitialAmount: lc.InitialAmount,
		InterestRate:  lc.InterestRate,
		Currency:      lc.Currency,
	}
	if ln.Kind == "" {
		ln.Kind = loan.KindBorrow
	}

	start, ok := parseDate(lc.StartDate)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("loan %q: unusable start date %q, timeline will be empty", lc.Name, lc.StartDate))
	}
	ln.StartDate = start

	if lc.InterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf("loan %q: negative interest rate %.2f", lc.Name, lc.InterestRate))
	}

	for _, ic := range lc.InterestChanges {
		date, ok := parseDate(ic.Date)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("loan %q: skipping interest change with bad date %q", lc.Name, ic.Date))
			continue
		}
		ln.InterestChanges = append(ln.InterestChanges, loan.InterestChange{Date: date, Rate: ic.Rate})
	}

	for _, chg := range lc.LoanChanges {
		date, ok := parseDate(chg.Date)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("loan %q: skipping loan change with bad date %q", lc.Name, chg.Date))
			continue
		}
		ln.Changes = append(ln.Changes, loan.Change{Date: date, Amount: chg.Amount})
	}

	for i, pc := range lc.Payments {
		payment, warns := ConvertPayment(lc.Name, i, pc)
		warnings = append(warnings, warns...)
		if payment != nil {
			ln.Payments = append(ln.Payments, *payment)
		}
	}

	return ln, warnings
}

// ConvertPayment turns one payment rule's file or API representation into an
// engine record, or nil when the rule is unusable.
func ConvertPayment(loanName string, index int, pc PaymentConfig) (*loan.Payment, []string) {
	var warnings []string

	start, ok := parseDate(pc.StartDate)
	if !ok {
		return nil, []string{fmt.Sprintf("loan %q: skipping payment %d with bad start date %q", loanName, index, pc.StartDate)}
	}

	payment := loan.Payment{
		Type:               loan.PaymentType(pc.Type),
		Amount:             pc.Amount,
		StartDate:          start,
		FrequencyUnit:      loan.FrequencyUnit(pc.FrequencyUnit),
		Frequency:          pc.Frequency,
		DayOfMonth:         pc.DayOfMonth,
		LastWeekdayOfMonth: pc.LastWeekdayOfMonth,
	}
	if payment.Type != loan.OneTime && payment.Type != loan.Scheduled {
		return nil, []string{fmt.Sprintf("loan %q: skipping payment %d with unknown type %q", loanName, index, pc.Type)}
	}

	if pc.EndDate != "" {
		end, ok := parseDate(pc.EndDate)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("loan %q: payment %d has bad end date %q, treating as open-ended", loanName, index, pc.EndDate))
		} else {
			payment.EndDate = &end
		}
	}

	if payment.Type == loan.Scheduled {
		if pc.Frequency < 1 {
			warnings = append(warnings, fmt.Sprintf("loan %q: payment %d has non-positive frequency, defaulting to 1", loanName, index))
		}
		if payment.Unit() == loan.UnitMonth && pc.DayOfMonth > 0 && pc.LastWeekdayOfMonth {
			warnings = append(warnings, fmt.Sprintf("loan %q: payment %d sets both dayOfMonth and lastWeekdayOfMonth; lastWeekdayOfMonth wins", loanName, index))
		}
	}

	return &payment, warnings
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := datetime.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
