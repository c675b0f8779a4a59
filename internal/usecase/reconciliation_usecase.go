package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/domain"
)

// ReconciliationUseCase matches bank statement transactions against recorded
// payments.
type ReconciliationUseCase struct {
	statementRepo StatementRepository
	bankTxRepo    BankTransactionRepository
	paymentRepo   PaymentRepository
	logger        zerolog.Logger
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	statementRepo StatementRepository,
	bankTxRepo BankTransactionRepository,
	paymentRepo PaymentRepository,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		statementRepo: statementRepo,
		bankTxRepo:    bankTxRepo,
		paymentRepo:   paymentRepo,
		logger:        logger,
	}
}

// ReconcileSummary reports the outcome of an auto-reconciliation pass.
type ReconcileSummary struct {
	StatementID  string                 `json:"statement_id"`
	Status       domain.StatementStatus `json:"status"`
	Considered   int                    `json:"considered"`
	AutoMatched  int                    `json:"auto_matched"`
	Unmatched    int                    `json:"unmatched"`
	TotalMatched int                    `json:"total_matched"`
}

// AutoReconcile scores every unmatched credit of the statement against the
// candidate payment pool and accepts the best score at or above the
// threshold. Transactions are processed in statement order and each payment
// is consumed by at most one transaction.
func (uc *ReconciliationUseCase) AutoReconcile(ctx context.Context, statementID string) (*ReconcileSummary, error) {
	statement, err := uc.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, err
	}

	if err := uc.statementRepo.SetStatus(ctx, statementID, domain.StatementStatusReconciling, ""); err != nil {
		return nil, err
	}

	transactions, err := uc.bankTxRepo.ListUnmatchedCredits(ctx, statementID)
	if err != nil {
		return nil, err
	}

	window := time.Duration(ReconciliationWindowDays) * 24 * time.Hour
	candidates, err := uc.paymentRepo.ListUnreconciled(ctx, statement.VillageID,
		statement.PeriodStart.Add(-window), statement.PeriodEnd.Add(window))
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(candidates))

	summary := &ReconcileSummary{StatementID: statementID, Considered: len(transactions)}
	now := time.Now().UTC()

	for _, transaction := range transactions {
		best, score := bestMatch(transaction, candidates, taken)
		if best == nil || score < domain.AutoMatchThreshold {
			continue
		}

		transaction.Status = domain.ReconciliationAutoMatched
		transaction.MatchedPayment = &best.ID
		transaction.MatchConfidence = &score
		transaction.ReviewedAt = &now

		if err := uc.bankTxRepo.UpdateMatch(ctx, transaction); err != nil {
			return nil, err
		}

		taken[best.ID] = true
		summary.AutoMatched++
	}

	counts, err := uc.bankTxRepo.CountByStatus(ctx, statementID)
	if err != nil {
		return nil, err
	}

	summary.Unmatched = counts[domain.ReconciliationUnmatched]
	summary.TotalMatched = summary.Considered - summary.Unmatched

	status := domain.StatementStatusReconciled
	if summary.Unmatched > 0 {
		status = domain.StatementStatusPartiallyReconciled
	}
	if err := uc.statementRepo.SetStatus(ctx, statementID, status, ""); err != nil {
		return nil, err
	}
	summary.Status = status

	uc.logger.Info().
		Str("statement_id", statementID).
		Int("auto_matched", summary.AutoMatched).
		Int("unmatched", summary.Unmatched).
		Msg("auto reconciliation complete")

	return summary, nil
}

// ManualMatch ties a transaction to a payment chosen by a reviewer. The pair
// still has to pass the looser manual tolerances.
func (uc *ReconciliationUseCase) ManualMatch(ctx context.Context, transactionID, paymentID, reviewedBy, notes string) (*domain.BankTransaction, error) {
	transaction, err := uc.bankTxRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.bankTxRepo.FindMatchForPayment(ctx, paymentID)
	if err != nil && !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != transactionID {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrPaymentAlreadyMatched, existing.ID)
	}

	if err := domain.ValidateManualMatch(transaction, payment); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	score := domain.MatchScore(transaction, payment)

	transaction.Status = domain.ReconciliationManualMatched
	transaction.MatchedPayment = &payment.ID
	transaction.MatchConfidence = &score
	transaction.ReviewedBy = &reviewedBy
	transaction.ReviewedAt = &now
	transaction.ReviewNotes = notes

	if err := uc.bankTxRepo.UpdateMatch(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Unmatch reverts a matched transaction to UNMATCHED, returning its payment
// to the candidate pool for future passes.
func (uc *ReconciliationUseCase) Unmatch(ctx context.Context, transactionID, reviewedBy, reason string) (*domain.BankTransaction, error) {
	transaction, err := uc.bankTxRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transaction.Status = domain.ReconciliationUnmatched
	transaction.MatchedPayment = nil
	transaction.MatchConfidence = nil
	transaction.ReviewedBy = &reviewedBy
	transaction.ReviewedAt = &now
	transaction.ReviewNotes = reason

	if err := uc.bankTxRepo.UpdateMatch(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// bestMatch walks the candidates in list order, skipping already consumed
// payments. Ties keep the earliest candidate, so repeated runs over the same
// statement pick the same payment.
func bestMatch(transaction *domain.BankTransaction, candidates []*domain.Payment, taken map[string]bool) (*domain.Payment, float64) {
	var best *domain.Payment
	bestScore := 0.0

	for _, payment := range candidates {
		if taken[payment.ID] {
			continue
		}
		score := domain.MatchScore(transaction, payment)
		if score > bestScore {
			best = payment
			bestScore = score
		}
	}

	return best, bestScore
}
