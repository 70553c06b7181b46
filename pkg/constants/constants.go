// Package constants provides shared constants for lendpile.
package constants

// DayLayout is the format expected for dates in config files and API payloads.
const DayLayout = "2006-01-02"

// MonthLayout is the format used when a date is rendered or accepted at month
// granularity.
const MonthLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DefaultFrequency is the default frequency for scheduled payments
	DefaultFrequency = 1

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultCurrency is used when a loan omits its currency
	DefaultCurrency = "SEK"
)

// Horizon constants bounding every recurrence and timeline loop.
const (
	// TimelineHorizonMonths caps timeline and monthly recurrence iteration
	TimelineHorizonMonths = 600

	// WeeklyHorizonDays caps weekly recurrence day offsets
	WeeklyHorizonDays = TimelineHorizonMonths * 7
)

// Payoff solver constants
const (
	// PayoffResidualTolerance is the ending debt below which a candidate
	// payment counts as paying the loan off
	PayoffResidualTolerance = 0.01

	// SolverIterations is the maximum number of bisection steps
	SolverIterations = 60

	// SolverBracketPad widens the initial upper payment bound beyond twice
	// the principal
	SolverBracketPad = 500000.0

	// SolverTolerance is the bracket width at which bisection stops
	SolverTolerance = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default portfolio file name
	DefaultConfigFile = "portfolio.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)
