package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/domain"
)

// PaymentJournalRepository implements usecase.PaymentJournalRepository. The
// unique index on payment_id enforces at most one entry per payment.
type PaymentJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentJournalRepository creates a new PaymentJournalRepository.
func NewPaymentJournalRepository(pool *pgxpool.Pool) *PaymentJournalRepository {
	return &PaymentJournalRepository{pool: pool}
}

// Create inserts a payment-to-entry link.
func (r *PaymentJournalRepository) Create(ctx context.Context, link *domain.PaymentJournalLink) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payment_journal_links (id, payment_id, entry_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		link.ID,
		link.PaymentID,
		link.EntryID,
		timeToPgTimestamptz(link.CreatedAt),
	)
	if isUniqueViolation(err, "payment_journal_links_payment_id_key") {
		return domain.ErrJournalExistsForPayment
	}

	return err
}

// ExistsForPayment reports whether the payment already has a journal entry.
func (r *PaymentJournalRepository) ExistsForPayment(ctx context.Context, paymentID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM payment_journal_links WHERE payment_id = $1)`,
		paymentID).Scan(&exists)

	return exists, err
}
