package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// SpendingService defines the behavior needed by SpendingHandler.
type SpendingService interface {
	RecordSpending(ctx context.Context, input usecase.RecordSpendingInput) (*domain.JournalEntry, error)
}

// SpendingHandler handles expense recording HTTP requests.
type SpendingHandler struct {
	spendingUC SpendingService
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(spendingUC SpendingService) *SpendingHandler {
	return &SpendingHandler{spendingUC: spendingUC}
}

// Create records an expense against the bank account.
func (h *SpendingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordSpendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.spendingUC.RecordSpending(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record spending", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
