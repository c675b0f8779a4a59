package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/adapter/http/handler"
	"github.com/smartvillage/accounting/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	ReportHandler    *handler.ReportHandler
	PaymentHandler   *handler.PaymentHandler
	SpendingHandler  *handler.SpendingHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Post("/bootstrap", cfg.AccountHandler.Bootstrap)
			r.Get("/code/{code}", cfg.AccountHandler.GetByCode)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Deactivate)
		})

		// Journal entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.CreateEntry)
			r.Get("/{id}", cfg.LedgerHandler.GetEntry)
			r.Post("/{id}/post", cfg.LedgerHandler.PostEntry)
		})

		// Accounting periods
		r.Route("/periods", func(r chi.Router) {
			r.Get("/{id}", cfg.LedgerHandler.GetPeriod)
			r.Post("/{id}/close", cfg.LedgerHandler.ClosePeriod)
			r.Get("/{id}/entries", cfg.LedgerHandler.ListEntries)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/income-statement", cfg.ReportHandler.IncomeStatement)
			r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)
		})

		// Payments and allocations
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Post("/{id}/approve", cfg.PaymentHandler.Approve)
			r.Post("/{id}/reject", cfg.PaymentHandler.Reject)
			r.Post("/{id}/allocate", cfg.PaymentHandler.Allocate)
			r.Post("/{id}/allocate/manual", cfg.PaymentHandler.AllocateManual)
			r.Get("/{id}/allocations", cfg.PaymentHandler.ListAllocations)
		})
		r.Post("/properties/{propertyID}/allocate", cfg.PaymentHandler.AllocateProperty)

		// Spending
		r.Post("/spending", cfg.SpendingHandler.Create)

		// Statements and reconciliation
		r.Route("/statements", func(r chi.Router) {
			r.Post("/", cfg.StatementHandler.Ingest)
			r.Get("/{id}", cfg.StatementHandler.Get)
			r.Post("/{id}/reconcile", cfg.StatementHandler.Reconcile)
		})
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/{id}/match", cfg.StatementHandler.Match)
			r.Post("/{id}/unmatch", cfg.StatementHandler.Unmatch)
		})
	})

	return r
}
