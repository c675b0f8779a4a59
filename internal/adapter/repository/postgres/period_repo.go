package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartvillage/accounting/internal/domain"
)

// PeriodRepository implements usecase.PeriodRepository.
type PeriodRepository struct {
	pool *pgxpool.Pool
}

// NewPeriodRepository creates a new PeriodRepository.
func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{pool: pool}
}

const periodColumns = `id, name, type, fiscal_year, start_date, end_date,
	closed, closed_at, closed_by, created_at`

// GetByID retrieves a period by ID.
func (r *PeriodRepository) GetByID(ctx context.Context, id string) (*domain.AccountingPeriod, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+periodColumns+`
		FROM accounting_periods
		WHERE id = $1`, id)

	return scanPeriod(row)
}

// FindOpenCovering returns the open period containing the date.
func (r *PeriodRepository) FindOpenCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+periodColumns+`
		FROM accounting_periods
		WHERE NOT closed AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1`, timeToPgTimestamptz(date))

	return scanPeriod(row)
}

// FindCovering returns the period containing the date, closed or not.
func (r *PeriodRepository) FindCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+periodColumns+`
		FROM accounting_periods
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1`, timeToPgTimestamptz(date))

	return scanPeriod(row)
}

// ListBetween lists periods overlapping the date range, oldest first.
func (r *PeriodRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.AccountingPeriod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+periodColumns+`
		FROM accounting_periods
		WHERE end_date >= $1 AND start_date <= $2
		ORDER BY start_date`, timeToPgTimestamptz(start), timeToPgTimestamptz(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*domain.AccountingPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	return periods, rows.Err()
}

// Create inserts a new period. The (name, fiscal_year) pair is unique; a
// conflict maps to domain.ErrDuplicatePeriod so the caller can re-select.
func (r *PeriodRepository) Create(ctx context.Context, period *domain.AccountingPeriod) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounting_periods (`+periodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		period.ID,
		period.Name,
		string(period.Type),
		period.FiscalYear,
		timeToPgTimestamptz(period.StartDate),
		timeToPgTimestamptz(period.EndDate),
		period.Closed,
		timePtrToPgTimestamptz(period.ClosedAt),
		strPtrToPgText(period.ClosedBy),
		timeToPgTimestamptz(period.CreatedAt),
	)
	if isUniqueViolation(err, "accounting_periods_name_fiscal_year_key") {
		return domain.ErrDuplicatePeriod
	}

	return err
}

// Close marks a period closed.
func (r *PeriodRepository) Close(ctx context.Context, id string, closedAt time.Time, closedBy string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounting_periods
		SET closed = TRUE, closed_at = $2, closed_by = $3
		WHERE id = $1`,
		id, timeToPgTimestamptz(closedAt), closedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPeriodNotFound
	}

	return nil
}

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var (
		period     domain.AccountingPeriod
		periodType string
		startDate  pgtype.Timestamptz
		endDate    pgtype.Timestamptz
		closedAt   pgtype.Timestamptz
		closedBy   pgtype.Text
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&period.ID,
		&period.Name,
		&periodType,
		&period.FiscalYear,
		&startDate,
		&endDate,
		&period.Closed,
		&closedAt,
		&closedBy,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPeriodNotFound
		}

		return nil, err
	}

	period.Type = domain.PeriodType(periodType)
	period.StartDate = startDate.Time
	period.EndDate = endDate.Time
	period.ClosedAt = pgTimestamptzToTimePtr(closedAt)
	period.ClosedBy = pgTextToStrPtr(closedBy)
	period.CreatedAt = createdAt.Time

	return &period, nil
}
