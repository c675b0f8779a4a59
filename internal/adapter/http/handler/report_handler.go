package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/smartvillage/accounting/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TrialBalance(ctx context.Context, asOf time.Time) (*usecase.TrialBalance, error)
	IncomeStatement(ctx context.Context, start, end time.Time) (*usecase.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*usecase.BalanceSheet, error)
}

// ReportHandler handles financial report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// TrialBalance returns the trial balance for the period covering as_of.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf := parseDateQuery(r, "as_of", time.Now().UTC())

	report, err := h.reportUC.TrialBalance(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// IncomeStatement returns revenue and expense movement over a date range.
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	start := parseDateQuery(r, "start", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	end := parseDateQuery(r, "end", now)

	report, err := h.reportUC.IncomeStatement(r.Context(), start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build income statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// BalanceSheet returns the statement of financial position as of a date.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := parseDateQuery(r, "as_of", time.Now().UTC())

	report, err := h.reportUC.BalanceSheet(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
