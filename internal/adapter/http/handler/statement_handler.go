package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	IngestStatement(ctx context.Context, input usecase.IngestStatementInput) (*domain.BankStatement, error)
	GetStatement(ctx context.Context, id string) (*domain.BankStatement, error)
}

// ReconciliationService defines the behavior needed for reconciliation
// endpoints.
type ReconciliationService interface {
	AutoReconcile(ctx context.Context, statementID string) (*usecase.ReconcileSummary, error)
	ManualMatch(ctx context.Context, transactionID, paymentID, reviewedBy, notes string) (*domain.BankTransaction, error)
	Unmatch(ctx context.Context, transactionID, reviewedBy, reason string) (*domain.BankTransaction, error)
}

// StatementHandler handles bank statement and reconciliation HTTP requests.
type StatementHandler struct {
	statementUC StatementService
	reconcileUC ReconciliationService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService, reconcileUC ReconciliationService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC, reconcileUC: reconcileUC}
}

// Ingest registers an uploaded statement file and processes it.
func (h *StatementHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	statement, err := h.statementUC.IngestStatement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to ingest statement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatementFromDomain(statement))
}

// Get retrieves a statement.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	statement, err := h.statementUC.GetStatement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// Reconcile runs an auto-reconciliation pass over the statement.
func (h *StatementHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	summary, err := h.reconcileUC.AutoReconcile(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Match manually matches a bank transaction to a payment.
func (h *StatementHandler) Match(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.ManualMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.reconcileUC.ManualMatch(r.Context(), id, req.PaymentID, req.ReviewedBy, req.Notes)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to match transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankTransactionFromDomain(transaction))
}

// Unmatch clears a bank transaction's match.
func (h *StatementHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.UnmatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.reconcileUC.Unmatch(r.Context(), id, req.ReviewedBy, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to unmatch transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankTransactionFromDomain(transaction))
}
