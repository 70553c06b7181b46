package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hoozter/lendpile/internal/loan"
)

// MemoryRepository keeps loans in process memory. It is the default store and
// the one tests use.
type MemoryRepository struct {
	mu    sync.RWMutex
	loans map[string]loan.Loan
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{loans: make(map[string]loan.Loan)}
}

// List returns all loans ordered by id.
func (r *MemoryRepository) List(ctx context.Context) ([]loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]loan.Loan, 0, len(r.loans))
	for _, ln := range r.loans {
		out = append(out, ln)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the loan with the given id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ln, ok := r.loans[id]
	if !ok {
		return loan.Loan{}, ErrNotFound
	}
	return ln, nil
}

// Save stores or replaces a loan keyed by its id.
func (r *MemoryRepository) Save(ctx context.Context, ln loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loans[ln.ID] = ln
	return nil
}

// Delete removes the loan with the given id.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[id]; !ok {
		return ErrNotFound
	}
	delete(r.loans, id)
	return nil
}
