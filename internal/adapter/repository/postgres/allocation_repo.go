package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// AllocationRepository implements usecase.AllocationRepository. Allocation
// rows are append-only.
type AllocationRepository struct {
	pool *pgxpool.Pool
}

// NewAllocationRepository creates a new AllocationRepository.
func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// Create inserts an allocation row in the caller's transaction.
func (r *AllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.PaymentAllocation) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO payment_allocations (id, payment_id, invoice_id, amount, allocated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		allocation.ID,
		allocation.PaymentID,
		allocation.InvoiceID,
		decimalToNumeric(allocation.Amount),
		timeToPgTimestamptz(allocation.AllocatedAt),
	)

	return err
}

// SumByInvoice returns the total allocated to an invoice.
func (r *AllocationRepository) SumByInvoice(ctx context.Context, tx usecase.Transaction, invoiceID string) (decimal.Decimal, error) {
	return r.sum(ctx, tx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_allocations
		WHERE invoice_id = $1`, invoiceID)
}

// SumByPayment returns the total allocated from a payment.
func (r *AllocationRepository) SumByPayment(ctx context.Context, tx usecase.Transaction, paymentID string) (decimal.Decimal, error) {
	return r.sum(ctx, tx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_allocations
		WHERE payment_id = $1`, paymentID)
}

func (r *AllocationRepository) sum(ctx context.Context, tx usecase.Transaction, query, id string) (decimal.Decimal, error) {
	q := querier(r.pool)
	if tx != nil {
		q = txQuerier(tx)
	}

	var total pgtype.Numeric
	if err := q.QueryRow(ctx, query, id).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// ListByPayment lists a payment's allocations in application order.
func (r *AllocationRepository) ListByPayment(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, payment_id, invoice_id, amount, allocated_at
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY allocated_at, id`, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*domain.PaymentAllocation
	for rows.Next() {
		var (
			allocation  domain.PaymentAllocation
			amount      pgtype.Numeric
			allocatedAt pgtype.Timestamptz
		)
		err := rows.Scan(
			&allocation.ID,
			&allocation.PaymentID,
			&allocation.InvoiceID,
			&amount,
			&allocatedAt,
		)
		if err != nil {
			return nil, err
		}
		allocation.Amount = numericToDecimal(amount)
		allocation.AllocatedAt = allocatedAt.Time
		allocations = append(allocations, &allocation)
	}

	return allocations, rows.Err()
}
