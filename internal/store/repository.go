// Package store persists loan records behind a small repository contract. The
// timeline engine itself never touches storage; only the API server does.
package store

import (
	"context"
	"errors"

	"github.com/hoozter/lendpile/internal/loan"
)

// ErrNotFound is returned when a loan id has no record.
var ErrNotFound = errors.New("loan not found")

// Repository is the opaque key-value contract the server reads loans from and
// writes them to.
type Repository interface {
	List(ctx context.Context) ([]loan.Loan, error)
	Get(ctx context.Context, id string) (loan.Loan, error)
	Save(ctx context.Context, ln loan.Loan) error
	Delete(ctx context.Context, id string) error
}
