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

// InvoiceRepository implements usecase.InvoiceRepository. The paid amount is
// always derived from the allocation rows, never stored.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceSelect = `
	SELECT i.id, i.property_id, i.amount, i.due_date, i.status, i.description,
		i.reference_number, i.paid_at, i.archived, i.created_at, i.updated_at,
		COALESCE((SELECT SUM(a.amount) FROM payment_allocations a
			WHERE a.invoice_id = i.id), 0) AS paid_amount
	FROM invoices i`

// Create inserts a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, property_id, amount, due_date, status,
			description, reference_number, paid_at, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		invoice.ID,
		invoice.PropertyID,
		decimalToNumeric(invoice.Amount),
		timeToPgTimestamptz(invoice.DueDate),
		string(invoice.Status),
		invoice.Description,
		invoice.ReferenceNumber,
		timePtrToPgTimestamptz(invoice.PaidAt),
		invoice.Archived,
		timeToPgTimestamptz(invoice.CreatedAt),
		timeToPgTimestamptz(invoice.UpdatedAt),
	)

	return err
}

// GetByID retrieves an invoice with its derived paid amount.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, invoiceSelect+`
	WHERE i.id = $1`, id))
}

// GetByIDForUpdate retrieves an invoice and locks its row.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	return scanInvoice(txQuerier(tx).QueryRow(ctx, invoiceSelect+`
	WHERE i.id = $1
	FOR UPDATE OF i`, id))
}

// ListPendingByPropertyForUpdate lists the property's PENDING invoices
// oldest-first and locks them against concurrent allocation.
func (r *InvoiceRepository) ListPendingByPropertyForUpdate(ctx context.Context, tx usecase.Transaction, propertyID string) ([]*domain.Invoice, error) {
	rows, err := txQuerier(tx).Query(ctx, invoiceSelect+`
	WHERE i.property_id = $1 AND i.status = $2 AND NOT i.archived
	ORDER BY i.created_at
	FOR UPDATE OF i`, propertyID, string(domain.InvoiceStatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

// SetStatus updates an invoice's billing status.
func (r *InvoiceRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.InvoiceStatus, paidAt *time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE invoices
		SET status = $2, paid_at = $3, updated_at = now()
		WHERE id = $1`,
		id, string(status), timePtrToPgTimestamptz(paidAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		invoice    domain.Invoice
		amount     pgtype.Numeric
		dueDate    pgtype.Timestamptz
		status     string
		paidAt     pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		paidAmount pgtype.Numeric
	)

	err := row.Scan(
		&invoice.ID,
		&invoice.PropertyID,
		&amount,
		&dueDate,
		&status,
		&invoice.Description,
		&invoice.ReferenceNumber,
		&paidAt,
		&invoice.Archived,
		&createdAt,
		&updatedAt,
		&paidAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	invoice.Amount = numericToDecimal(amount)
	invoice.DueDate = dueDate.Time
	invoice.Status = domain.InvoiceStatus(status)
	invoice.PaidAt = pgTimestamptzToTimePtr(paidAt)
	invoice.CreatedAt = createdAt.Time
	invoice.UpdatedAt = updatedAt.Time
	invoice.PaidAmount = numericToDecimal(paidAmount)

	return &invoice, nil
}
