package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
	"github.com/smartvillage/accounting/internal/usecase/mocks"
)

type statementFixture struct {
	uc            *usecase.StatementUseCase
	statementRepo *mocks.MockStatementRepository
	bankTxRepo    *mocks.MockBankTransactionRepository
	extractor     *mocks.MockStatementExtractor
	reconciler    *mocks.MockReconciler
}

func newStatementFixture(t *testing.T) *statementFixture {
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockStatementExtractor(ctrl)

	statementRepo := mocks.NewMockStatementRepository()
	bankTxRepo := mocks.NewMockBankTransactionRepository()
	reconciler := mocks.NewMockReconciler()

	uc := usecase.NewStatementUseCase(
		mocks.NewMockTransactionManager(),
		statementRepo,
		bankTxRepo,
		mocks.NewMockCounterRepository(),
		extractor,
		reconciler,
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
	)

	return &statementFixture{
		uc:            uc,
		statementRepo: statementRepo,
		bankTxRepo:    bankTxRepo,
		extractor:     extractor,
		reconciler:    reconciler,
	}
}

func sampleExtraction() *domain.StatementExtraction {
	day := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	return &domain.StatementExtraction{
		BankName:       "Kasikorn Bank",
		AccountNumber:  "123-4-56789-0",
		PeriodStart:    time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		OpeningBalance: dec("10000"),
		ClosingBalance: dec("12500"),
		Confidence:     0.93,
		Transactions: []domain.ExtractedTransaction{
			{Date: day, Description: "transfer in", Reference: "REF1", CreditAmount: dec("2500")},
			{Date: day, Description: "garbled row"}, // no positive side, skipped
		},
	}
}

func TestStatementUseCase_IngestStatement(t *testing.T) {
	f := newStatementFixture(t)
	f.extractor.EXPECT().Checksum(gomock.Any(), "/uploads/may.pdf").Return("hash-1", nil)
	f.extractor.EXPECT().Extract(gomock.Any(), "/uploads/may.pdf").Return(sampleExtraction(), nil)

	statement, err := f.uc.IngestStatement(context.Background(), usecase.IngestStatementInput{
		FilePath:      "/uploads/may.pdf",
		VillageID:     "village-1",
		UploadedBy:    "admin",
		StatementDate: time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if statement.Number != "STMT-202505-001" {
		t.Errorf("expected STMT-202505-001, got %s", statement.Number)
	}
	if statement.Status != domain.StatementStatusReady {
		t.Errorf("expected READY, got %s", statement.Status)
	}
	if statement.BankName != "Kasikorn Bank" || statement.OCRConfidence != 0.93 {
		t.Errorf("extraction metadata missing: %+v", statement)
	}

	credits, _ := f.bankTxRepo.ListUnmatchedCredits(context.Background(), statement.ID)
	if len(credits) != 1 {
		t.Fatalf("expected 1 transaction row (garbled row skipped), got %d", len(credits))
	}
	if !credits[0].CreditAmount.Equal(dec("2500")) {
		t.Errorf("transaction amount wrong: %s", credits[0].CreditAmount)
	}

	if len(f.reconciler.Calls) != 1 || f.reconciler.Calls[0] != statement.ID {
		t.Errorf("ingest should trigger auto reconciliation, got %v", f.reconciler.Calls)
	}
}

func TestStatementUseCase_IngestStatement_DuplicateFile(t *testing.T) {
	f := newStatementFixture(t)
	f.extractor.EXPECT().Checksum(gomock.Any(), gomock.Any()).Return("hash-1", nil).Times(2)
	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(sampleExtraction(), nil)

	input := usecase.IngestStatementInput{
		FilePath:      "/uploads/may.pdf",
		VillageID:     "village-1",
		UploadedBy:    "admin",
		StatementDate: time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
	}

	if _, err := f.uc.IngestStatement(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.FilePath = "/uploads/may-copy.pdf"
	_, err := f.uc.IngestStatement(context.Background(), input)
	if !errors.Is(err, domain.ErrDuplicateStatement) {
		t.Fatalf("expected ErrDuplicateStatement, got %v", err)
	}
}

func TestStatementUseCase_IngestStatement_ExtractionFailure(t *testing.T) {
	f := newStatementFixture(t)
	f.extractor.EXPECT().Checksum(gomock.Any(), gomock.Any()).Return("hash-2", nil)
	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(nil, errors.New("unreadable scan"))

	statement, err := f.uc.IngestStatement(context.Background(), usecase.IngestStatementInput{
		FilePath:      "/uploads/blurry.pdf",
		VillageID:     "village-1",
		UploadedBy:    "admin",
		StatementDate: time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("extraction failure should not surface as an ingest error, got %v", err)
	}

	if statement.Status != domain.StatementStatusFailed {
		t.Errorf("expected FAILED, got %s", statement.Status)
	}
	if !strings.Contains(statement.Notes, "unreadable scan") {
		t.Errorf("failure cause should be recorded in the notes, got %q", statement.Notes)
	}

	if len(f.reconciler.Calls) != 0 {
		t.Error("failed extraction must not trigger reconciliation")
	}
}
