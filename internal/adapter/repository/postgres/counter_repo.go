package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/usecase"
)

// CounterRepository implements usecase.CounterRepository on a counters
// table. The upsert locks the counter row until the caller's transaction
// ends, which serializes numbering and keeps sequences gap-free.
type CounterRepository struct {
	pool *pgxpool.Pool
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(pool *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{pool: pool}
}

// Next returns the next value of the named counter.
func (r *CounterRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	var value int64
	err := txQuerier(tx).QueryRow(ctx, `
		INSERT INTO counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`, name).Scan(&value)

	return value, err
}
