package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// SpendingUseCase records village expenses as posted journal entries:
// Dr expense account / Cr bank.
type SpendingUseCase struct {
	accountRepo AccountRepository
	ledger      LedgerService
}

// NewSpendingUseCase creates a new SpendingUseCase.
func NewSpendingUseCase(accountRepo AccountRepository, ledger LedgerService) *SpendingUseCase {
	return &SpendingUseCase{
		accountRepo: accountRepo,
		ledger:      ledger,
	}
}

// RecordSpendingInput represents input for recording an expense.
type RecordSpendingInput struct {
	Description        string
	Amount             decimal.Decimal
	Date               time.Time
	ExpenseAccountCode string
	ReferenceID        *string
	ReferenceNumber    *string
}

// RecordSpending posts an expense against the current bank account. The
// target account must be an active expense account.
func (uc *SpendingUseCase) RecordSpending(ctx context.Context, input RecordSpendingInput) (*domain.JournalEntry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	expense, err := uc.accountRepo.GetByCode(ctx, input.ExpenseAccountCode)
	if err != nil {
		return nil, err
	}
	if expense.Type != domain.AccountTypeExpense || !expense.Active {
		return nil, fmt.Errorf("%w: %s is not an active expense account", domain.ErrInvalidLine, input.ExpenseAccountCode)
	}

	bank, err := uc.accountRepo.GetByCode(ctx, domain.CodeBankCurrent)
	if err != nil {
		return nil, err
	}

	refType := domain.ReferenceTypeSpending
	return uc.ledger.CreateEntry(ctx, CreateEntryInput{
		Description:     input.Description,
		Date:            input.Date,
		ReferenceType:   &refType,
		ReferenceID:     input.ReferenceID,
		ReferenceNumber: input.ReferenceNumber,
		AutoPost:        true,
		Lines: []domain.EntryLineInput{
			{AccountID: expense.ID, Debit: input.Amount, Description: input.Description},
			{AccountID: bank.ID, Credit: input.Amount, Description: input.Description},
		},
	})
}
