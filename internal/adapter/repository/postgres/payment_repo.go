package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository. The allocated
// amount is derived from the allocation rows.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentSelect = `
	SELECT p.id, p.number, p.property_id, p.village_id, p.amount, p.payment_date,
		p.method, p.reference_number, p.notes, p.status, p.approved_by,
		p.approved_at, p.rejected_by, p.rejected_at, p.rejection_reason,
		p.archived, p.created_at, p.updated_at,
		COALESCE((SELECT SUM(a.amount) FROM payment_allocations a
			WHERE a.payment_id = p.id), 0) AS allocated_amount
	FROM payments p`

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, number, property_id, village_id, amount,
			payment_date, method, reference_number, notes, status, approved_by,
			approved_at, rejected_by, rejected_at, rejection_reason, archived,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18)`,
		payment.ID,
		payment.Number,
		payment.PropertyID,
		payment.VillageID,
		decimalToNumeric(payment.Amount),
		timeToPgTimestamptz(payment.PaymentDate),
		string(payment.Method),
		payment.ReferenceNumber,
		payment.Notes,
		string(payment.Status),
		strPtrToPgText(payment.ApprovedBy),
		timePtrToPgTimestamptz(payment.ApprovedAt),
		strPtrToPgText(payment.RejectedBy),
		timePtrToPgTimestamptz(payment.RejectedAt),
		payment.RejectionReason,
		payment.Archived,
		timeToPgTimestamptz(payment.CreatedAt),
		timeToPgTimestamptz(payment.UpdatedAt),
	)

	return err
}

// GetByID retrieves a payment with its derived allocated amount.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, paymentSelect+`
	WHERE p.id = $1`, id))
}

// GetByIDForUpdate retrieves a payment and locks its row.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	return scanPayment(txQuerier(tx).QueryRow(ctx, paymentSelect+`
	WHERE p.id = $1
	FOR UPDATE OF p`, id))
}

// SetStatus updates a payment's status inside the caller's transaction.
func (r *PaymentRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE payments
		SET status = $2, updated_at = now()
		WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// Approve stamps approval metadata and moves the payment to CONFIRMED.
func (r *PaymentRepository) Approve(ctx context.Context, id, approvedBy string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = now()
		WHERE id = $1`,
		id, string(domain.PaymentStatusConfirmed), approvedBy, timeToPgTimestamptz(at))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// Reject stamps rejection metadata and moves the payment to CANCELED.
func (r *PaymentRepository) Reject(ctx context.Context, id, rejectedBy, reason string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET status = $2, rejected_by = $3, rejected_at = $4,
			rejection_reason = $5, updated_at = now()
		WHERE id = $1`,
		id, string(domain.PaymentStatusCanceled), rejectedBy, timeToPgTimestamptz(at), reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// ListUnreconciled lists the village's payments within the date window that
// no bank transaction is matched to.
func (r *PaymentRepository) ListUnreconciled(ctx context.Context, villageID string, from, to time.Time) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, paymentSelect+`
	WHERE p.village_id = $1 AND NOT p.archived
		AND p.payment_date >= $2 AND p.payment_date <= $3
		AND p.status <> $4
		AND NOT EXISTS (SELECT 1 FROM bank_transactions t
			WHERE t.matched_payment = p.id)
	ORDER BY p.payment_date, p.created_at, p.id`,
		villageID, timeToPgTimestamptz(from), timeToPgTimestamptz(to),
		string(domain.PaymentStatusCanceled))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListWithUnallocated lists the property's payments that still have an
// unallocated remainder, oldest first.
func (r *PaymentRepository) ListWithUnallocated(ctx context.Context, propertyID string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, paymentSelect+`
	WHERE p.property_id = $1 AND NOT p.archived
		AND p.status NOT IN ($2, $3)
		AND p.amount > COALESCE((SELECT SUM(a.amount) FROM payment_allocations a
			WHERE a.payment_id = p.id), 0)
	ORDER BY p.payment_date`,
		propertyID, string(domain.PaymentStatusPending), string(domain.PaymentStatusCanceled))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment     domain.Payment
		amount      pgtype.Numeric
		paymentDate pgtype.Timestamptz
		method      string
		status      string
		approvedBy  pgtype.Text
		approvedAt  pgtype.Timestamptz
		rejectedBy  pgtype.Text
		rejectedAt  pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		allocated   pgtype.Numeric
	)

	err := row.Scan(
		&payment.ID,
		&payment.Number,
		&payment.PropertyID,
		&payment.VillageID,
		&amount,
		&paymentDate,
		&method,
		&payment.ReferenceNumber,
		&payment.Notes,
		&status,
		&approvedBy,
		&approvedAt,
		&rejectedBy,
		&rejectedAt,
		&payment.RejectionReason,
		&payment.Archived,
		&createdAt,
		&updatedAt,
		&allocated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	payment.Amount = numericToDecimal(amount)
	payment.PaymentDate = paymentDate.Time
	payment.Method = domain.PaymentMethod(method)
	payment.Status = domain.PaymentStatus(status)
	payment.ApprovedBy = pgTextToStrPtr(approvedBy)
	payment.ApprovedAt = pgTimestamptzToTimePtr(approvedAt)
	payment.RejectedBy = pgTextToStrPtr(rejectedBy)
	payment.RejectedAt = pgTimestamptzToTimePtr(rejectedAt)
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time
	payment.AllocatedAmount = numericToDecimal(allocated)

	return &payment, nil
}

func scanPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
