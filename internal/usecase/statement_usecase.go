package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/domain"
)

// Reconciler runs an auto-reconciliation pass over a statement.
type Reconciler interface {
	AutoReconcile(ctx context.Context, statementID string) (*ReconcileSummary, error)
}

// StatementUseCase ingests uploaded bank statement files: checksum, OCR
// extraction, transaction rows, then an auto-reconciliation pass.
type StatementUseCase struct {
	txManager     TransactionManager
	statementRepo StatementRepository
	bankTxRepo    BankTransactionRepository
	counterRepo   CounterRepository
	extractor     StatementExtractor
	reconciler    Reconciler
	idGen         IDGenerator
	logger        zerolog.Logger
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	txManager TransactionManager,
	statementRepo StatementRepository,
	bankTxRepo BankTransactionRepository,
	counterRepo CounterRepository,
	extractor StatementExtractor,
	reconciler Reconciler,
	idGen IDGenerator,
	logger zerolog.Logger,
) *StatementUseCase {
	return &StatementUseCase{
		txManager:     txManager,
		statementRepo: statementRepo,
		bankTxRepo:    bankTxRepo,
		counterRepo:   counterRepo,
		extractor:     extractor,
		reconciler:    reconciler,
		idGen:         idGen,
		logger:        logger,
	}
}

// IngestStatementInput represents input for ingesting a statement file.
type IngestStatementInput struct {
	FilePath      string
	VillageID     string
	UploadedBy    string
	StatementDate time.Time
}

// IngestStatement registers an uploaded statement file and processes it.
// The same file content, identified by checksum, is rejected on re-upload.
// Extraction failures leave the statement in FAILED with the cause in its
// notes; the statement itself is always returned.
func (uc *StatementUseCase) IngestStatement(ctx context.Context, input IngestStatementInput) (*domain.BankStatement, error) {
	hash, err := uc.extractor.Checksum(ctx, input.FilePath)
	if err != nil {
		return nil, fmt.Errorf("statement checksum: %w", err)
	}

	if existing, err := uc.statementRepo.GetByFileHash(ctx, hash); err == nil {
		return nil, fmt.Errorf("%w: already ingested as %s", domain.ErrDuplicateStatement, existing.Number)
	} else if !errors.Is(err, domain.ErrStatementNotFound) {
		return nil, err
	}

	statementDate := input.StatementDate
	if statementDate.IsZero() {
		statementDate = time.Now().UTC()
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seq, err := uc.counterRepo.Next(ctx, tx, domain.StatementCounterKey(statementDate))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	statement := &domain.BankStatement{
		ID:            uc.idGen.Generate(),
		Number:        domain.StatementNumber(statementDate, seq),
		VillageID:     input.VillageID,
		StatementDate: statementDate,
		FilePath:      input.FilePath,
		FileHash:      hash,
		Status:        domain.StatementStatusUploaded,
		UploadedBy:    input.UploadedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.statementRepo.Create(ctx, tx, statement); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return uc.process(ctx, statement)
}

// GetStatement retrieves a statement by ID.
func (uc *StatementUseCase) GetStatement(ctx context.Context, id string) (*domain.BankStatement, error) {
	return uc.statementRepo.GetByID(ctx, id)
}

// process runs extraction and reconciliation for a freshly ingested
// statement. The statement record survives every failure past this point.
func (uc *StatementUseCase) process(ctx context.Context, statement *domain.BankStatement) (*domain.BankStatement, error) {
	if err := uc.statementRepo.SetStatus(ctx, statement.ID, domain.StatementStatusProcessing, ""); err != nil {
		return nil, err
	}

	extraction, err := uc.extractor.Extract(ctx, statement.FilePath)
	if err != nil {
		uc.logger.Error().Err(err).Str("statement_id", statement.ID).Msg("statement extraction failed")
		if setErr := uc.statementRepo.SetStatus(ctx, statement.ID, domain.StatementStatusFailed, err.Error()); setErr != nil {
			return nil, setErr
		}
		return uc.statementRepo.GetByID(ctx, statement.ID)
	}

	statement.BankName = extraction.BankName
	statement.AccountNumber = extraction.AccountNumber
	statement.AccountName = extraction.AccountName
	statement.PeriodStart = extraction.PeriodStart
	statement.PeriodEnd = extraction.PeriodEnd
	statement.OpeningBalance = extraction.OpeningBalance
	statement.ClosingBalance = extraction.ClosingBalance
	statement.OCRConfidence = extraction.Confidence
	statement.Status = domain.StatementStatusReady
	statement.UpdatedAt = time.Now().UTC()

	if err := uc.statementRepo.Update(ctx, statement); err != nil {
		return nil, err
	}

	transactions := uc.buildTransactions(statement, extraction)
	if len(transactions) > 0 {
		if err := uc.bankTxRepo.CreateBatch(ctx, transactions); err != nil {
			return nil, err
		}
	}

	if _, err := uc.reconciler.AutoReconcile(ctx, statement.ID); err != nil {
		uc.logger.Error().Err(err).Str("statement_id", statement.ID).Msg("auto reconciliation failed after ingest")
	}

	return uc.statementRepo.GetByID(ctx, statement.ID)
}

// buildTransactions converts extracted rows to transaction records, skipping
// rows without a readable date or without exactly one positive side.
func (uc *StatementUseCase) buildTransactions(statement *domain.BankStatement, extraction *domain.StatementExtraction) []*domain.BankTransaction {
	now := time.Now().UTC()
	transactions := make([]*domain.BankTransaction, 0, len(extraction.Transactions))

	for i, row := range extraction.Transactions {
		credit := row.CreditAmount.IsPositive()
		debit := row.DebitAmount.IsPositive()
		if row.Date.IsZero() || credit == debit || row.CreditAmount.IsNegative() || row.DebitAmount.IsNegative() {
			uc.logger.Warn().
				Str("statement_id", statement.ID).
				Int("row", i+1).
				Msg("skipping unreadable extracted row")
			continue
		}

		transactions = append(transactions, &domain.BankTransaction{
			ID:              uc.idGen.Generate(),
			StatementID:     statement.ID,
			Date:            row.Date,
			Time:            row.Time,
			Description:     row.Description,
			ReferenceNumber: row.Reference,
			CreditAmount:    row.CreditAmount,
			DebitAmount:     row.DebitAmount,
			Status:          domain.ReconciliationUnmatched,
			RawText:         row.RawText,
			OCRConfidence:   extraction.Confidence,
			CreatedAt:       now,
		})
	}

	return transactions
}
