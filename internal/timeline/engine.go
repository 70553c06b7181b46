// Package timeline computes the month-by-month evolution of a loan's
// outstanding balance: recurrence expansion, monthly payment aggregation, the
// timeline itself, the payoff target solver, and schedule overlap validation.
package timeline

import "go.uber.org/zap"

// Engine evaluates loans. It is purely functional: every method takes
// immutable inputs and produces new outputs, so one Engine may serve
// concurrent callers.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}
