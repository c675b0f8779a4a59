package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/domain"
)

// BankTransactionRepository implements usecase.BankTransactionRepository.
type BankTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewBankTransactionRepository creates a new BankTransactionRepository.
func NewBankTransactionRepository(pool *pgxpool.Pool) *BankTransactionRepository {
	return &BankTransactionRepository{pool: pool}
}

const bankTxColumns = `id, statement_id, date, time, description, reference_number,
	credit_amount, debit_amount, status, matched_payment, match_confidence,
	reviewed_by, reviewed_at, review_notes, raw_text, ocr_confidence, created_at`

// CreateBatch inserts statement transactions in one round trip.
func (r *BankTransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.BankTransaction) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(`
			INSERT INTO bank_transactions (`+bankTxColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17)`,
			t.ID,
			t.StatementID,
			timeToPgTimestamptz(t.Date),
			t.Time,
			t.Description,
			t.ReferenceNumber,
			decimalToNumeric(t.CreditAmount),
			decimalToNumeric(t.DebitAmount),
			string(t.Status),
			strPtrToPgText(t.MatchedPayment),
			floatPtrToPgFloat8(t.MatchConfidence),
			strPtrToPgText(t.ReviewedBy),
			timePtrToPgTimestamptz(t.ReviewedAt),
			t.ReviewNotes,
			t.RawText,
			t.OCRConfidence,
			timeToPgTimestamptz(t.CreatedAt),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range transactions {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// GetByID retrieves a statement transaction.
func (r *BankTransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	return scanBankTransaction(r.pool.QueryRow(ctx, `
		SELECT `+bankTxColumns+`
		FROM bank_transactions
		WHERE id = $1`, id))
}

// ListUnmatchedCredits lists the statement's unmatched credit rows in
// statement order.
func (r *BankTransactionRepository) ListUnmatchedCredits(ctx context.Context, statementID string) ([]*domain.BankTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bankTxColumns+`
		FROM bank_transactions
		WHERE statement_id = $1 AND status = $2 AND credit_amount > 0
		ORDER BY date, created_at`,
		statementID, string(domain.ReconciliationUnmatched))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.BankTransaction
	for rows.Next() {
		transaction, err := scanBankTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// CountByStatus counts the statement's transactions per match status.
func (r *BankTransactionRepository) CountByStatus(ctx context.Context, statementID string) (map[domain.ReconciliationStatus]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM bank_transactions
		WHERE statement_id = $1
		GROUP BY status`, statementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ReconciliationStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.ReconciliationStatus(status)] = count
	}

	return counts, rows.Err()
}

// UpdateMatch persists a transaction's match fields.
func (r *BankTransactionRepository) UpdateMatch(ctx context.Context, transaction *domain.BankTransaction) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bank_transactions
		SET status = $2, matched_payment = $3, match_confidence = $4,
			reviewed_by = $5, reviewed_at = $6, review_notes = $7
		WHERE id = $1`,
		transaction.ID,
		string(transaction.Status),
		strPtrToPgText(transaction.MatchedPayment),
		floatPtrToPgFloat8(transaction.MatchConfidence),
		strPtrToPgText(transaction.ReviewedBy),
		timePtrToPgTimestamptz(transaction.ReviewedAt),
		transaction.ReviewNotes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// FindMatchForPayment returns the transaction currently matched to a payment.
func (r *BankTransactionRepository) FindMatchForPayment(ctx context.Context, paymentID string) (*domain.BankTransaction, error) {
	return scanBankTransaction(r.pool.QueryRow(ctx, `
		SELECT `+bankTxColumns+`
		FROM bank_transactions
		WHERE matched_payment = $1
		LIMIT 1`, paymentID))
}

func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var (
		transaction    domain.BankTransaction
		date           pgtype.Timestamptz
		credit         pgtype.Numeric
		debit          pgtype.Numeric
		status         string
		matchedPayment pgtype.Text
		confidence     pgtype.Float8
		reviewedBy     pgtype.Text
		reviewedAt     pgtype.Timestamptz
		createdAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.StatementID,
		&date,
		&transaction.Time,
		&transaction.Description,
		&transaction.ReferenceNumber,
		&credit,
		&debit,
		&status,
		&matchedPayment,
		&confidence,
		&reviewedBy,
		&reviewedAt,
		&transaction.ReviewNotes,
		&transaction.RawText,
		&transaction.OCRConfidence,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	transaction.Date = date.Time
	transaction.CreditAmount = numericToDecimal(credit)
	transaction.DebitAmount = numericToDecimal(debit)
	transaction.Status = domain.ReconciliationStatus(status)
	transaction.MatchedPayment = pgTextToStrPtr(matchedPayment)
	transaction.MatchConfidence = pgFloat8ToFloatPtr(confidence)
	transaction.ReviewedBy = pgTextToStrPtr(reviewedBy)
	transaction.ReviewedAt = pgTimestamptzToTimePtr(reviewedAt)
	transaction.CreatedAt = createdAt.Time

	return &transaction, nil
}
