package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/smartvillage/accounting/internal/adapter/http"
	"github.com/smartvillage/accounting/internal/adapter/http/handler"
	"github.com/smartvillage/accounting/internal/adapter/ocr"
	postgresRepo "github.com/smartvillage/accounting/internal/adapter/repository/postgres"
	redisRepo "github.com/smartvillage/accounting/internal/adapter/repository/redis"
	"github.com/smartvillage/accounting/internal/infrastructure/config"
	"github.com/smartvillage/accounting/internal/infrastructure/logger"
	"github.com/smartvillage/accounting/internal/infrastructure/metrics"
	"github.com/smartvillage/accounting/internal/infrastructure/postgres"
	"github.com/smartvillage/accounting/internal/infrastructure/redis"
	"github.com/smartvillage/accounting/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Export pool statistics
	metrics.New(pool)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
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
	extractor := ocr.NewExtractor(cfg.OCRServiceURL, cfg.OCRTimeout)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, appLogger)
	periodUC := usecase.NewPeriodUseCase(periodRepo, idGen, retrier)
	accumulator := usecase.NewBalanceAccumulator(accountRepo, balanceRepo)
	ledgerUC := usecase.NewLedgerUseCase(txManager, journalRepo, counterRepo, accumulator, periodUC, idGen)
	reportingUC := usecase.NewReportingUseCase(periodRepo, accountRepo, balanceRepo, reportCache, appLogger)
	allocationUC := usecase.NewAllocationUseCase(txManager, paymentRepo, invoiceRepo, allocationRepo, idGen, appLogger)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, accountRepo, bridgeRepo, counterRepo, ledgerUC, allocationUC, idGen, appLogger)
	spendingUC := usecase.NewSpendingUseCase(accountRepo, ledgerUC)
	reconciliationUC := usecase.NewReconciliationUseCase(statementRepo, bankTxRepo, paymentRepo, appLogger)
	statementUC := usecase.NewStatementUseCase(txManager, statementRepo, bankTxRepo, counterRepo, extractor, reconciliationUC, idGen, appLogger)

	// Seed the chart of accounts
	if cfg.BootstrapAccounts {
		created, err := accountUC.Bootstrap(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to bootstrap chart of accounts")
		}
		if created > 0 {
			log.Info().Int("created", created).Msg("chart of accounts bootstrapped")
		}
	}

	// Initialize handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC, periodUC),
		ReportHandler:    handler.NewReportHandler(reportingUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC, allocationUC),
		SpendingHandler:  handler.NewSpendingHandler(spendingUC),
		StatementHandler: handler.NewStatementHandler(statementUC, reconciliationUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func serverAddr(port string) string {
	return ":" + port
}
