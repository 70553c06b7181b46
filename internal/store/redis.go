package store

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hoozter/lendpile/internal/loan"
	"github.com/redis/go-redis/v9"
)

const (
	loanKeyPrefix = "lendpile:loan:"
	loanIndexKey  = "lendpile:loans"
)

// RedisRepository stores loans as JSON values in Redis, with a set of ids as
// the index.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to Redis at the given address.
func NewRedisRepository(addr string) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the connection.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// List returns all indexed loans.
func (r *RedisRepository) List(ctx context.Context) ([]loan.Loan, error) {
	ids, err := r.client.SMembers(ctx, loanIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing loan ids: %w", err)
	}

	out := make([]loan.Loan, 0, len(ids))
	for _, id := range ids {
		ln, err := r.Get(ctx, id)
		if err == ErrNotFound {
			// Index entry without a value; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, nil
}

// Get returns the loan with the given id.
func (r *RedisRepository) Get(ctx context.Context, id string) (loan.Loan, error) {
	raw, err := r.client.Get(ctx, loanKeyPrefix+id).Result()
	if err == redis.Nil {
		return loan.Loan{}, ErrNotFound
	}
	if err != nil {
		return loan.Loan{}, fmt.Errorf("reading loan %s: %w", id, err)
	}

	var ln loan.Loan
	if err := json.Unmarshal([]byte(raw), &ln); err != nil {
		return loan.Loan{}, fmt.Errorf("decoding loan %s: %w", id, err)
	}
	return ln, nil
}

// Save stores or replaces a loan keyed by its id.
func (r *RedisRepository) Save(ctx context.Context, ln loan.Loan) error {
	raw, err := json.Marshal(ln)
	if err != nil {
		return fmt.Errorf("encoding loan %s: %w", ln.ID, err)
	}
	if err := r.client.Set(ctx, loanKeyPrefix+ln.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("writing loan %s: %w", ln.ID, err)
	}
	return r.client.SAdd(ctx, loanIndexKey, ln.ID).Err()
}

// Delete removes the loan with the given id.
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, loanKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("deleting loan %s: %w", id, err)
	}
	if err := r.client.SRem(ctx, loanIndexKey, id).Err(); err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
