package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceAccumulator folds posted journal lines into general ledger balance
// rows. Apply must run inside the posting transaction so the balance row lock
// serializes concurrent postings to the same (account, period).
type BalanceAccumulator struct {
	accountRepo AccountRepository
	balanceRepo BalanceRepository
}

// NewBalanceAccumulator creates a new BalanceAccumulator.
func NewBalanceAccumulator(accountRepo AccountRepository, balanceRepo BalanceRepository) *BalanceAccumulator {
	return &BalanceAccumulator{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
	}
}

// Apply accumulates one journal line into the (account, period) balance row,
// creating and locking the row as needed.
func (ba *BalanceAccumulator) Apply(ctx context.Context, tx Transaction, accountID, periodID string, debit, credit decimal.Decimal) error {
	account, err := ba.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	balance, err := ba.balanceRepo.GetOrCreateForUpdate(ctx, tx, accountID, periodID)
	if err != nil {
		return err
	}

	balance.Apply(debit, credit, account.NormalBalance)

	return ba.balanceRepo.Update(ctx, tx, balance)
}
