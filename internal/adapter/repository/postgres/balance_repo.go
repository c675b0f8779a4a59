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

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *BalanceRepository {
	return &BalanceRepository{pool: pool, idGen: idGen}
}

const balanceColumns = `id, account_id, period_id, beginning_balance,
	debit_total, credit_total, ending_balance, created_at, updated_at`

// GetOrCreateForUpdate locks the (account, period) balance row, inserting a
// zero row first when none exists. The insert tolerates a concurrent winner;
// the following locked select sees whichever row won.
func (r *BalanceRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, accountID, periodID string) (*domain.GeneralLedgerBalance, error) {
	q := txQuerier(tx)

	_, err := q.Exec(ctx, `
		INSERT INTO general_ledger_balances
			(id, account_id, period_id, beginning_balance, debit_total,
			 credit_total, ending_balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, 0, now(), now())
		ON CONFLICT (account_id, period_id) DO NOTHING`,
		r.idGen.Generate(), accountID, periodID)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, `
		SELECT `+balanceColumns+`
		FROM general_ledger_balances
		WHERE account_id = $1 AND period_id = $2
		FOR UPDATE`, accountID, periodID)

	return scanBalance(row)
}

// Update persists the accumulated totals of a locked balance row.
func (r *BalanceRepository) Update(ctx context.Context, tx usecase.Transaction, balance *domain.GeneralLedgerBalance) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE general_ledger_balances
		SET debit_total = $2, credit_total = $3, ending_balance = $4,
			updated_at = now()
		WHERE id = $1`,
		balance.ID,
		decimalToNumeric(balance.DebitTotal),
		decimalToNumeric(balance.CreditTotal),
		decimalToNumeric(balance.EndingBalance),
	)

	return err
}

// ListByPeriod lists all balance rows of a period.
func (r *BalanceRepository) ListByPeriod(ctx context.Context, periodID string) ([]*domain.GeneralLedgerBalance, error) {
	return r.ListByPeriods(ctx, []string{periodID})
}

// ListByPeriods lists all balance rows of the given periods.
func (r *BalanceRepository) ListByPeriods(ctx context.Context, periodIDs []string) ([]*domain.GeneralLedgerBalance, error) {
	if len(periodIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+balanceColumns+`
		FROM general_ledger_balances
		WHERE period_id = ANY($1)
		ORDER BY account_id, period_id`, periodIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.GeneralLedgerBalance
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

func scanBalance(row pgx.Row) (*domain.GeneralLedgerBalance, error) {
	var (
		balance   domain.GeneralLedgerBalance
		beginning pgtype.Numeric
		debit     pgtype.Numeric
		credit    pgtype.Numeric
		ending    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&balance.ID,
		&balance.AccountID,
		&balance.PeriodID,
		&beginning,
		&debit,
		&credit,
		&ending,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	balance.BeginningBalance = numericToDecimal(beginning)
	balance.DebitTotal = numericToDecimal(debit)
	balance.CreditTotal = numericToDecimal(credit)
	balance.EndingBalance = numericToDecimal(ending)
	balance.CreatedAt = createdAt.Time
	balance.UpdatedAt = updatedAt.Time

	return &balance, nil
}
