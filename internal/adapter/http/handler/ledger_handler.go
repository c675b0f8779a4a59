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

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListEntriesByPeriod(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error)
}

// PeriodService defines the behavior needed for period endpoints.
type PeriodService interface {
	GetPeriod(ctx context.Context, id string) (*domain.AccountingPeriod, error)
	ClosePeriod(ctx context.Context, id, closedBy string) (*domain.AccountingPeriod, error)
}

// LedgerHandler handles journal entry and period HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	periodUC PeriodService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, periodUC PeriodService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, periodUC: periodUC}
}

// CreateEntry creates a journal entry.
func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.CreateEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// PostEntry posts a draft journal entry to the general ledger.
func (h *LedgerHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.PostEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// GetEntry retrieves a journal entry with its lines.
func (h *LedgerHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListEntries lists a period's journal entries.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if periodID == "" {
		writeError(w, http.StatusBadRequest, "missing period ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.ListEntriesByPeriod(r.Context(), periodID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list journal entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// GetPeriod retrieves an accounting period.
func (h *LedgerHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing period ID", "")
		return
	}

	period, err := h.periodUC.GetPeriod(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get period", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(period))
}

// ClosePeriod closes an accounting period.
func (h *LedgerHandler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing period ID", "")
		return
	}

	var req dto.ClosePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	period, err := h.periodUC.ClosePeriod(r.Context(), id, req.ClosedBy)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close period", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(period))
}
