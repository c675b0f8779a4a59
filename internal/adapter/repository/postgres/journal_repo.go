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

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

const entryColumns = `id, number, date, description, reference_type, reference_id,
	reference_number, total_debit, total_credit, status, period_id, posted_at,
	created_at, updated_at`

const lineColumns = `id, entry_id, line_number, account_id, debit, credit,
	description, created_at`

// CreateWithLines inserts an entry and its lines in the caller's transaction.
func (r *JournalRepository) CreateWithLines(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.ID,
		entry.Number,
		timeToPgTimestamptz(entry.Date),
		entry.Description,
		strPtrToPgText(entry.ReferenceType),
		strPtrToPgText(entry.ReferenceID),
		strPtrToPgText(entry.ReferenceNumber),
		decimalToNumeric(entry.TotalDebit),
		decimalToNumeric(entry.TotalCredit),
		string(entry.Status),
		entry.PeriodID,
		timePtrToPgTimestamptz(entry.PostedAt),
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	for _, line := range entry.Lines {
		_, err := q.Exec(ctx, `
			INSERT INTO journal_entry_lines (`+lineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID,
			line.EntryID,
			line.LineNumber,
			line.AccountID,
			decimalToNumeric(line.Debit),
			decimalToNumeric(line.Credit),
			line.Description,
			timeToPgTimestamptz(line.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an entry with its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return r.getByID(ctx, r.pool, id, false)
}

// GetByIDForUpdate retrieves an entry with its lines, locking the entry row.
func (r *JournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	return r.getByID(ctx, txQuerier(tx), id, true)
}

func (r *JournalRepository) getByID(ctx context.Context, q querier, id string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	entry, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+lineColumns+`
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, *line)
	}

	return entry, rows.Err()
}

// MarkPosted transitions an entry to POSTED.
func (r *JournalRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, id string, postedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, updated_at = now()
		WHERE id = $1`,
		id, string(domain.EntryStatusPosted), timeToPgTimestamptz(postedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListByPeriod lists entries of a period, newest first, without lines.
func (r *JournalRepository) ListByPeriod(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM journal_entries
		WHERE period_id = $1
		ORDER BY date DESC, number DESC
		LIMIT $2 OFFSET $3`, periodID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry           domain.JournalEntry
		date            pgtype.Timestamptz
		referenceType   pgtype.Text
		referenceID     pgtype.Text
		referenceNumber pgtype.Text
		totalDebit      pgtype.Numeric
		totalCredit     pgtype.Numeric
		status          string
		postedAt        pgtype.Timestamptz
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.Number,
		&date,
		&entry.Description,
		&referenceType,
		&referenceID,
		&referenceNumber,
		&totalDebit,
		&totalCredit,
		&status,
		&entry.PeriodID,
		&postedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Date = date.Time
	entry.ReferenceType = pgTextToStrPtr(referenceType)
	entry.ReferenceID = pgTextToStrPtr(referenceID)
	entry.ReferenceNumber = pgTextToStrPtr(referenceNumber)
	entry.TotalDebit = numericToDecimal(totalDebit)
	entry.TotalCredit = numericToDecimal(totalCredit)
	entry.Status = domain.EntryStatus(status)
	entry.PostedAt = pgTimestamptzToTimePtr(postedAt)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func scanLine(row pgx.Row) (*domain.JournalEntryLine, error) {
	var (
		line      domain.JournalEntryLine
		debit     pgtype.Numeric
		credit    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&line.ID,
		&line.EntryID,
		&line.LineNumber,
		&line.AccountID,
		&debit,
		&credit,
		&line.Description,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	line.Debit = numericToDecimal(debit)
	line.Credit = numericToDecimal(credit)
	line.CreatedAt = createdAt.Time

	return &line, nil
}
