package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/smartvillage/accounting/internal/adapter/http"
	"github.com/smartvillage/accounting/internal/adapter/http/handler"
	"github.com/smartvillage/accounting/internal/adapter/ocr"
	postgresRepo "github.com/smartvillage/accounting/internal/adapter/repository/postgres"
	redisRepo "github.com/smartvillage/accounting/internal/adapter/repository/redis"
	infraredis "github.com/smartvillage/accounting/internal/infrastructure/redis"
	"github.com/smartvillage/accounting/internal/usecase"
	"github.com/smartvillage/accounting/tests/testutil"
)

// newTestAPI wires the full application stack against the test database.
func newTestAPI(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	logger := zerolog.Nop()
	pool := testDB.Pool

	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(logger)
	idGen := postgresRepo.NewULIDGenerator()
	accountRepo := postgresRepo.NewAccountRepository(pool)
	periodRepo := postgresRepo.NewPeriodRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	counterRepo := postgresRepo.NewCounterRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool, idGen)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	allocationRepo := postgresRepo.NewAllocationRepository(pool)
	bridgeRepo := postgresRepo.NewPaymentJournalRepository(pool)
	statementRepo := postgresRepo.NewStatementRepository(pool)
	bankTxRepo := postgresRepo.NewBankTransactionRepository(pool)
	reportCache := redisRepo.NewCache(redisClient)
	extractor := ocr.NewExtractor(os.Getenv("OCR_SERVICE_URL"), 0)

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, logger)
	periodUC := usecase.NewPeriodUseCase(periodRepo, idGen, retrier)
	accumulator := usecase.NewBalanceAccumulator(accountRepo, balanceRepo)
	ledgerUC := usecase.NewLedgerUseCase(txManager, journalRepo, counterRepo, accumulator, periodUC, idGen)
	reportingUC := usecase.NewReportingUseCase(periodRepo, accountRepo, balanceRepo, reportCache, logger)
	allocationUC := usecase.NewAllocationUseCase(txManager, paymentRepo, invoiceRepo, allocationRepo, idGen, logger)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, accountRepo, bridgeRepo, counterRepo, ledgerUC, allocationUC, idGen, logger)
	spendingUC := usecase.NewSpendingUseCase(accountRepo, ledgerUC)
	reconciliationUC := usecase.NewReconciliationUseCase(statementRepo, bankTxRepo, paymentRepo, logger)
	statementUC := usecase.NewStatementUseCase(txManager, statementRepo, bankTxRepo, counterRepo, extractor, reconciliationUC, idGen, logger)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC, periodUC),
		ReportHandler:    handler.NewReportHandler(reportingUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC, allocationUC),
		SpendingHandler:  handler.NewSpendingHandler(spendingUC),
		StatementHandler: handler.NewStatementHandler(statementUC, reconciliationUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           logger,
	})
}
