package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hoozter/lendpile/internal/loan"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(absent) error = %v, expected ErrNotFound", err)
	}

	if err := repo.Save(ctx, loan.Loan{ID: "b", Name: "Second"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := repo.Save(ctx, loan.Loan{ID: "a", Name: "First"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "First" {
		t.Errorf("Get() name = %q, expected First", got.Name)
	}

	// Save with an existing id replaces.
	if err := repo.Save(ctx, loan.Loan{ID: "a", Name: "Replaced"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, _ = repo.Get(ctx, "a")
	if got.Name != "Replaced" {
		t.Errorf("Get() name = %q, expected Replaced", got.Name)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("List() = %+v, expected ids ordered a, b", list)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, expected ErrNotFound", err)
	}
}

func TestMemoryRepositoryConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = repo.Save(ctx, loan.Loan{ID: id})
			_, _ = repo.List(ctx)
			_, _ = repo.Get(ctx, id)
		}(string(rune('a' + i)))
	}
	wg.Wait()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 8 {
		t.Errorf("List() = %d loans, expected 8", len(list))
	}
}
