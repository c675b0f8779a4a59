package usecase

import (
	"context"
	"time"

	"github.com/smartvillage/accounting/internal/domain"
)

// PeriodResolver yields the open period a given date posts into.
type PeriodResolver interface {
	ResolvePeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
}

// LedgerUseCase handles journal entry business logic.
type LedgerUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	counterRepo CounterRepository
	accumulator *BalanceAccumulator
	periods     PeriodResolver
	idGen       IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	counterRepo CounterRepository,
	accumulator *BalanceAccumulator,
	periods PeriodResolver,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		counterRepo: counterRepo,
		accumulator: accumulator,
		periods:     periods,
		idGen:       idGen,
	}
}

// CreateEntryInput represents input for creating a journal entry.
type CreateEntryInput struct {
	Description     string
	Date            time.Time
	Lines           []domain.EntryLineInput
	ReferenceType   *string
	ReferenceID     *string
	ReferenceNumber *string
	AutoPost        bool
}

// CreateEntry validates the double-entry invariants, assigns the next entry
// number for the entry month and persists the entry as a draft. Nothing is
// written when validation fails. With AutoPost the entry is posted in a
// follow-up transaction.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error) {
	totalDebit, totalCredit, err := domain.ValidateLines(input.Lines)
	if err != nil {
		return nil, err
	}

	period, err := uc.periods.ResolvePeriod(ctx, input.Date)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seq, err := uc.counterRepo.Next(ctx, tx, domain.EntryCounterKey(input.Date))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.JournalEntry{
		ID:              uc.idGen.Generate(),
		Number:          domain.EntryNumber(input.Date, seq),
		Date:            input.Date,
		Description:     input.Description,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		ReferenceNumber: input.ReferenceNumber,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		Status:          domain.EntryStatusDraft,
		PeriodID:        period.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	entry.Lines = make([]domain.JournalEntryLine, 0, len(input.Lines))
	for i, line := range input.Lines {
		entry.Lines = append(entry.Lines, domain.JournalEntryLine{
			ID:          uc.idGen.Generate(),
			EntryID:     entry.ID,
			LineNumber:  i + 1,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			CreatedAt:   now,
		})
	}

	if err := uc.journalRepo.CreateWithLines(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if input.AutoPost {
		return uc.PostEntry(ctx, entry.ID)
	}

	return entry, nil
}

// PostEntry transitions a draft entry to POSTED and folds its lines into the
// general ledger balances, all in one transaction. Posting is one-way and
// idempotent in effect: a second call fails with ErrEntryNotDraft.
func (uc *LedgerUseCase) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entry, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryStatusDraft {
		return nil, domain.ErrEntryNotDraft
	}

	for _, line := range entry.Lines {
		if err := uc.accumulator.Apply(ctx, tx, line.AccountID, entry.PeriodID, line.Debit, line.Credit); err != nil {
			return nil, err
		}
	}

	postedAt := time.Now().UTC()
	if err := uc.journalRepo.MarkPosted(ctx, tx, entry.ID, postedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	entry.Status = domain.EntryStatusPosted
	entry.PostedAt = &postedAt

	return entry, nil
}

// GetEntry retrieves a journal entry with its lines.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// ListEntriesByPeriod lists entries posted into a period.
func (uc *LedgerUseCase) ListEntriesByPeriod(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.journalRepo.ListByPeriod(ctx, periodID, limit, offset)
}
