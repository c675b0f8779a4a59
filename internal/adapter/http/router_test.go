package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/adapter/http/handler"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"POST /api/v1/accounts/bootstrap",
		"POST /api/v1/entries/",
		"POST /api/v1/entries/{id}/post",
		"POST /api/v1/periods/{id}/close",
		"GET /api/v1/reports/trial-balance",
		"GET /api/v1/reports/income-statement",
		"GET /api/v1/reports/balance-sheet",
		"POST /api/v1/payments/",
		"POST /api/v1/payments/{id}/approve",
		"POST /api/v1/payments/{id}/allocate",
		"POST /api/v1/properties/{propertyID}/allocate",
		"POST /api/v1/spending",
		"POST /api/v1/statements/",
		"POST /api/v1/statements/{id}/reconcile",
		"POST /api/v1/transactions/{id}/match",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig() RouterConfig {
	return RouterConfig{
		AccountHandler:   handler.NewAccountHandler(nil),
		LedgerHandler:    handler.NewLedgerHandler(nil, nil),
		ReportHandler:    handler.NewReportHandler(nil),
		PaymentHandler:   handler.NewPaymentHandler(nil, nil),
		SpendingHandler:  handler.NewSpendingHandler(nil),
		StatementHandler: handler.NewStatementHandler(nil, nil),
		HealthHandler:    handler.NewHealthHandler(nil, nil),
		Logger:           zerolog.Nop(),
	}
}
