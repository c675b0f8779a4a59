package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
	"github.com/smartvillage/accounting/internal/usecase/mocks"
)

type reconciliationFixture struct {
	uc            *usecase.ReconciliationUseCase
	statementRepo *mocks.MockStatementRepository
	bankTxRepo    *mocks.MockBankTransactionRepository
	paymentRepo   *mocks.MockPaymentRepository
}

func newReconciliationFixture() *reconciliationFixture {
	statementRepo := mocks.NewMockStatementRepository()
	bankTxRepo := mocks.NewMockBankTransactionRepository()
	paymentRepo := mocks.NewMockPaymentRepository()

	uc := usecase.NewReconciliationUseCase(statementRepo, bankTxRepo, paymentRepo, zerolog.Nop())

	return &reconciliationFixture{
		uc:            uc,
		statementRepo: statementRepo,
		bankTxRepo:    bankTxRepo,
		paymentRepo:   paymentRepo,
	}
}

func (f *reconciliationFixture) seedStatement(id string, start, end time.Time) *domain.BankStatement {
	statement := &domain.BankStatement{
		ID:          id,
		VillageID:   "village-1",
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      domain.StatementStatusReady,
	}
	_ = f.statementRepo.Create(context.Background(), nil, statement)
	return statement
}

func (f *reconciliationFixture) seedPayment(id, amount string, date time.Time, reference string) *domain.Payment {
	payment := &domain.Payment{
		ID:              id,
		VillageID:       "village-1",
		PropertyID:      "prop-1",
		Amount:          dec(amount),
		PaymentDate:     date,
		ReferenceNumber: reference,
		Status:          domain.PaymentStatusConfirmed,
	}
	_ = f.paymentRepo.Create(context.Background(), payment)
	return payment
}

func (f *reconciliationFixture) seedTransaction(id, statementID, credit string, date time.Time, reference string) *domain.BankTransaction {
	transaction := &domain.BankTransaction{
		ID:              id,
		StatementID:     statementID,
		Date:            date,
		CreditAmount:    dec(credit),
		ReferenceNumber: reference,
		Status:          domain.ReconciliationUnmatched,
	}
	_ = f.bankTxRepo.CreateBatch(context.Background(), []*domain.BankTransaction{transaction})
	return transaction
}

func TestReconciliationUseCase_AutoReconcile(t *testing.T) {
	f := newReconciliationFixture()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	f.seedStatement("stmt-1", start, end)

	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "2500.00", day, "REF123")
	f.seedTransaction("tx-1", "stmt-1", "2500.00", day, "REF123")

	summary, err := f.uc.AutoReconcile(context.Background(), "stmt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AutoMatched != 1 || summary.Unmatched != 0 {
		t.Fatalf("expected 1 auto match and 0 unmatched, got %+v", summary)
	}
	if summary.Status != domain.StatementStatusReconciled {
		t.Errorf("fully matched statement should be RECONCILED, got %s", summary.Status)
	}

	transaction, _ := f.bankTxRepo.GetByID(context.Background(), "tx-1")
	if transaction.Status != domain.ReconciliationAutoMatched {
		t.Errorf("expected AUTO_MATCHED, got %s", transaction.Status)
	}
	if transaction.MatchedPayment == nil || *transaction.MatchedPayment != "pay-1" {
		t.Errorf("expected match to pay-1, got %v", transaction.MatchedPayment)
	}
	if transaction.MatchConfidence == nil || *transaction.MatchConfidence < domain.AutoMatchThreshold {
		t.Errorf("confidence should be at or above the threshold, got %v", transaction.MatchConfidence)
	}
}

func TestReconciliationUseCase_AutoReconcile_BelowThreshold(t *testing.T) {
	f := newReconciliationFixture()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	f.seedStatement("stmt-1", start, end)

	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "2490", day, "")
	f.seedTransaction("tx-1", "stmt-1", "2500", day.AddDate(0, 0, 5), "")

	summary, err := f.uc.AutoReconcile(context.Background(), "stmt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AutoMatched != 0 || summary.Unmatched != 1 {
		t.Fatalf("near-miss pair must stay unmatched, got %+v", summary)
	}
	if summary.Status != domain.StatementStatusPartiallyReconciled {
		t.Errorf("expected PARTIALLY_RECONCILED, got %s", summary.Status)
	}
}

func TestReconciliationUseCase_AutoReconcile_PaymentConsumedOnce(t *testing.T) {
	f := newReconciliationFixture()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	f.seedStatement("stmt-1", start, end)

	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "1000", day, "REF9")
	f.seedTransaction("tx-1", "stmt-1", "1000", day, "REF9")
	f.seedTransaction("tx-2", "stmt-1", "1000", day, "REF9")

	summary, err := f.uc.AutoReconcile(context.Background(), "stmt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AutoMatched != 1 {
		t.Fatalf("one payment can satisfy only one transaction, got %d matches", summary.AutoMatched)
	}
	if summary.Unmatched != 1 {
		t.Fatalf("the second transaction must stay unmatched, got %d", summary.Unmatched)
	}
}

func TestReconciliationUseCase_AutoReconcile_TieKeepsFirstCandidate(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	// Two indistinguishable payments score identically; the match must go to
	// the first one in candidate order on every run.
	for i := 0; i < 20; i++ {
		f := newReconciliationFixture()
		f.seedStatement("stmt-1", start, end)
		f.seedPayment("pay-1", "1000", day, "REF5")
		f.seedPayment("pay-2", "1000", day, "REF5")
		f.seedTransaction("tx-1", "stmt-1", "1000", day, "REF5")

		if _, err := f.uc.AutoReconcile(context.Background(), "stmt-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		transaction, _ := f.bankTxRepo.GetByID(context.Background(), "tx-1")
		if transaction.MatchedPayment == nil || *transaction.MatchedPayment != "pay-1" {
			t.Fatalf("tie must resolve to the first candidate, got %v", transaction.MatchedPayment)
		}
	}
}

func TestReconciliationUseCase_ManualMatch(t *testing.T) {
	f := newReconciliationFixture()
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "1000", day, "")
	f.seedTransaction("tx-1", "stmt-1", "1050", day.AddDate(0, 0, 4), "")

	transaction, err := f.uc.ManualMatch(context.Background(), "tx-1", "pay-1", "treasurer", "confirmed by slip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if transaction.Status != domain.ReconciliationManualMatched {
		t.Errorf("expected MANUAL_MATCHED, got %s", transaction.Status)
	}
	if transaction.ReviewedBy == nil || *transaction.ReviewedBy != "treasurer" {
		t.Errorf("reviewer should be recorded, got %v", transaction.ReviewedBy)
	}
	if transaction.ReviewNotes != "confirmed by slip" {
		t.Errorf("notes should be recorded, got %q", transaction.ReviewNotes)
	}
}

func TestReconciliationUseCase_ManualMatch_Tolerances(t *testing.T) {
	f := newReconciliationFixture()
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "1000", day, "")
	f.seedTransaction("tx-1", "stmt-1", "1200", day, "")

	if _, err := f.uc.ManualMatch(context.Background(), "tx-1", "pay-1", "treasurer", ""); !errors.Is(err, domain.ErrAmountDiffTooLarge) {
		t.Errorf("over ten percent difference must be rejected, got %v", err)
	}

	f.seedTransaction("tx-2", "stmt-1", "1000", day.AddDate(0, 0, 8), "")
	if _, err := f.uc.ManualMatch(context.Background(), "tx-2", "pay-1", "treasurer", ""); !errors.Is(err, domain.ErrDateDiffTooLarge) {
		t.Errorf("over seven days difference must be rejected, got %v", err)
	}
}

func TestReconciliationUseCase_ManualMatch_PaymentAlreadyMatched(t *testing.T) {
	f := newReconciliationFixture()
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "1000", day, "")
	f.seedTransaction("tx-1", "stmt-1", "1000", day, "")
	f.seedTransaction("tx-2", "stmt-1", "1000", day, "")

	if _, err := f.uc.ManualMatch(context.Background(), "tx-1", "pay-1", "treasurer", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.ManualMatch(context.Background(), "tx-2", "pay-1", "treasurer", ""); !errors.Is(err, domain.ErrPaymentAlreadyMatched) {
		t.Errorf("expected ErrPaymentAlreadyMatched, got %v", err)
	}
}

func TestReconciliationUseCase_Unmatch(t *testing.T) {
	f := newReconciliationFixture()
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	f.seedPayment("pay-1", "1000", day, "")
	f.seedTransaction("tx-1", "stmt-1", "1000", day, "")

	if _, err := f.uc.ManualMatch(context.Background(), "tx-1", "pay-1", "treasurer", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transaction, err := f.uc.Unmatch(context.Background(), "tx-1", "auditor", "wrong payer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if transaction.Status != domain.ReconciliationUnmatched {
		t.Errorf("expected UNMATCHED, got %s", transaction.Status)
	}
	if transaction.MatchedPayment != nil || transaction.MatchConfidence != nil {
		t.Error("unmatching must clear the match fields")
	}

	// The payment is free again.
	if _, err := f.uc.ManualMatch(context.Background(), "tx-1", "pay-1", "treasurer", ""); err != nil {
		t.Errorf("payment should be matchable after unmatch, got %v", err)
	}
}
