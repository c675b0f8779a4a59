package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// StatementRepository implements usecase.StatementRepository.
type StatementRepository struct {
	pool *pgxpool.Pool
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{pool: pool}
}

const statementColumns = `id, number, village_id, bank_name, account_number,
	account_name, statement_date, period_start, period_end, opening_balance,
	closing_balance, file_path, file_hash, status, ocr_confidence, notes,
	uploaded_by, created_at, updated_at`

// Create inserts a statement in the caller's transaction. The unique index
// on file_hash rejects re-uploads of the same file.
func (r *StatementRepository) Create(ctx context.Context, tx usecase.Transaction, statement *domain.BankStatement) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO bank_statements (`+statementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19)`,
		statement.ID,
		statement.Number,
		statement.VillageID,
		statement.BankName,
		statement.AccountNumber,
		statement.AccountName,
		timeToPgTimestamptz(statement.StatementDate),
		timeToPgTimestamptz(statement.PeriodStart),
		timeToPgTimestamptz(statement.PeriodEnd),
		decimalToNumeric(statement.OpeningBalance),
		decimalToNumeric(statement.ClosingBalance),
		statement.FilePath,
		statement.FileHash,
		string(statement.Status),
		statement.OCRConfidence,
		statement.Notes,
		statement.UploadedBy,
		timeToPgTimestamptz(statement.CreatedAt),
		timeToPgTimestamptz(statement.UpdatedAt),
	)
	if isUniqueViolation(err, "bank_statements_file_hash_key") {
		return domain.ErrDuplicateStatement
	}

	return err
}

// GetByID retrieves a statement.
func (r *StatementRepository) GetByID(ctx context.Context, id string) (*domain.BankStatement, error) {
	return scanStatement(r.pool.QueryRow(ctx, `
		SELECT `+statementColumns+`
		FROM bank_statements
		WHERE id = $1`, id))
}

// GetByFileHash retrieves the statement uploaded with the given file hash.
func (r *StatementRepository) GetByFileHash(ctx context.Context, hash string) (*domain.BankStatement, error) {
	return scanStatement(r.pool.QueryRow(ctx, `
		SELECT `+statementColumns+`
		FROM bank_statements
		WHERE file_hash = $1`, hash))
}

// Update persists the extracted metadata and status of a statement.
func (r *StatementRepository) Update(ctx context.Context, statement *domain.BankStatement) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bank_statements
		SET bank_name = $2, account_number = $3, account_name = $4,
			statement_date = $5, period_start = $6, period_end = $7,
			opening_balance = $8, closing_balance = $9, status = $10,
			ocr_confidence = $11, notes = $12, updated_at = now()
		WHERE id = $1`,
		statement.ID,
		statement.BankName,
		statement.AccountNumber,
		statement.AccountName,
		timeToPgTimestamptz(statement.StatementDate),
		timeToPgTimestamptz(statement.PeriodStart),
		timeToPgTimestamptz(statement.PeriodEnd),
		decimalToNumeric(statement.OpeningBalance),
		decimalToNumeric(statement.ClosingBalance),
		string(statement.Status),
		statement.OCRConfidence,
		statement.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatementNotFound
	}

	return nil
}

// SetStatus updates a statement's processing status and notes.
func (r *StatementRepository) SetStatus(ctx context.Context, id string, status domain.StatementStatus, notes string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bank_statements
		SET status = $2, notes = $3, updated_at = now()
		WHERE id = $1`, id, string(status), notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatementNotFound
	}

	return nil
}

func scanStatement(row pgx.Row) (*domain.BankStatement, error) {
	var (
		statement     domain.BankStatement
		statementDate pgtype.Timestamptz
		periodStart   pgtype.Timestamptz
		periodEnd     pgtype.Timestamptz
		opening       pgtype.Numeric
		closing       pgtype.Numeric
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&statement.ID,
		&statement.Number,
		&statement.VillageID,
		&statement.BankName,
		&statement.AccountNumber,
		&statement.AccountName,
		&statementDate,
		&periodStart,
		&periodEnd,
		&opening,
		&closing,
		&statement.FilePath,
		&statement.FileHash,
		&status,
		&statement.OCRConfidence,
		&statement.Notes,
		&statement.UploadedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatementNotFound
		}

		return nil, err
	}

	statement.StatementDate = statementDate.Time
	statement.PeriodStart = periodStart.Time
	statement.PeriodEnd = periodEnd.Time
	statement.OpeningBalance = numericToDecimal(opening)
	statement.ClosingBalance = numericToDecimal(closing)
	statement.Status = domain.StatementStatus(status)
	statement.CreatedAt = createdAt.Time
	statement.UpdatedAt = updatedAt.Time

	return &statement, nil
}
