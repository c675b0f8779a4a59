package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrPeriodNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrStatementNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateAccountCode),
		errors.Is(err, domain.ErrDuplicatePeriod),
		errors.Is(err, domain.ErrDuplicateStatement),
		errors.Is(err, domain.ErrJournalExistsForPayment),
		errors.Is(err, domain.ErrEntryNotDraft),
		errors.Is(err, domain.ErrPaymentNotPending),
		errors.Is(err, domain.ErrPaymentAlreadyMatched):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidBalanceType),
		errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrTooFewLines),
		errors.Is(err, domain.ErrInvalidLine),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrExceedsUnallocated),
		errors.Is(err, domain.ErrExceedsOutstanding),
		errors.Is(err, domain.ErrAmountDiffTooLarge),
		errors.Is(err, domain.ErrDateDiffTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a YYYY-MM-DD query parameter with a default value.
func parseDateQuery(r *http.Request, key string, defaultValue time.Time) time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.Parse("2006-01-02", val)
	if err != nil {
		return defaultValue
	}
	return d
}
