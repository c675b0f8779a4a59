package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ApprovePayment(ctx context.Context, paymentID, approvedBy string) (*domain.Payment, error)
	RejectPayment(ctx context.Context, paymentID, rejectedBy, reason string) (*domain.Payment, error)
}

// AllocationService defines the behavior needed for allocation endpoints.
type AllocationService interface {
	AllocateFIFO(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
	AllocateManual(ctx context.Context, paymentID, invoiceID string, amount decimal.Decimal) (*domain.PaymentAllocation, error)
	AllocateAllUnallocated(ctx context.Context, propertyID string) (*usecase.BulkAllocationSummary, error)
	ListAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

// PaymentHandler handles payment and allocation HTTP requests.
type PaymentHandler struct {
	paymentUC    PaymentService
	allocationUC AllocationService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService, allocationUC AllocationService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC, allocationUC: allocationUC}
}

// Create records a new pending payment.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.CreatePayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Get retrieves a payment.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Approve approves a pending payment.
func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.ApprovePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.ApprovePayment(r.Context(), id, req.ApprovedBy)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to approve payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Reject rejects a pending payment.
func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.RejectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.RejectPayment(r.Context(), id, req.RejectedBy, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reject payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Allocate runs a FIFO allocation pass for the payment.
func (h *PaymentHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	allocations, err := h.allocationUC.AllocateFIFO(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationsFromDomain(allocations))
}

// AllocateManual applies part of the payment to a specific invoice.
func (h *PaymentHandler) AllocateManual(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.ManualAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	allocation, err := h.allocationUC.AllocateManual(r.Context(), id, req.InvoiceID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AllocationFromDomain(allocation))
}

// ListAllocations lists the payment's allocations.
func (h *PaymentHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	allocations, err := h.allocationUC.ListAllocations(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list allocations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationsFromDomain(allocations))
}

// AllocateProperty runs a FIFO pass for every payment of a property that
// still has an unallocated remainder.
func (h *PaymentHandler) AllocateProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		writeError(w, http.StatusBadRequest, "missing property ID", "")
		return
	}

	summary, err := h.allocationUC.AllocateAllUnallocated(r.Context(), propertyID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to allocate property payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
