package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

type paymentServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
	getFn     func(ctx context.Context, id string) (*domain.Payment, error)
	approveFn func(ctx context.Context, paymentID, approvedBy string) (*domain.Payment, error)
	rejectFn  func(ctx context.Context, paymentID, rejectedBy, reason string) (*domain.Payment, error)
}

func (s *paymentServiceStub) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error) {
	return s.createFn(ctx, input)
}

func (s *paymentServiceStub) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.getFn(ctx, id)
}

func (s *paymentServiceStub) ApprovePayment(ctx context.Context, paymentID, approvedBy string) (*domain.Payment, error) {
	return s.approveFn(ctx, paymentID, approvedBy)
}

func (s *paymentServiceStub) RejectPayment(ctx context.Context, paymentID, rejectedBy, reason string) (*domain.Payment, error) {
	return s.rejectFn(ctx, paymentID, rejectedBy, reason)
}

type allocationServiceStub struct {
	fifoFn   func(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
	manualFn func(ctx context.Context, paymentID, invoiceID string, amount decimal.Decimal) (*domain.PaymentAllocation, error)
	bulkFn   func(ctx context.Context, propertyID string) (*usecase.BulkAllocationSummary, error)
	listFn   func(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

func (s *allocationServiceStub) AllocateFIFO(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	return s.fifoFn(ctx, paymentID)
}

func (s *allocationServiceStub) AllocateManual(ctx context.Context, paymentID, invoiceID string, amount decimal.Decimal) (*domain.PaymentAllocation, error) {
	return s.manualFn(ctx, paymentID, invoiceID, amount)
}

func (s *allocationServiceStub) AllocateAllUnallocated(ctx context.Context, propertyID string) (*usecase.BulkAllocationSummary, error) {
	return s.bulkFn(ctx, propertyID)
}

func (s *allocationServiceStub) ListAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	return s.listFn(ctx, paymentID)
}

func TestPaymentHandler_Create_Success(t *testing.T) {
	payment := &domain.Payment{
		ID:     "pay-1",
		Number: "PAY-202501-0001",
		Amount: decimal.NewFromInt(2500),
		Status: domain.PaymentStatusPending,
	}

	var captured usecase.CreatePaymentInput
	handler := NewPaymentHandler(&paymentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error) {
			captured = input
			return payment, nil
		},
	}, &allocationServiceStub{})

	body, _ := json.Marshal(dto.CreatePaymentRequest{
		PropertyID:  "prop-1",
		VillageID:   "vil-1",
		Amount:      decimal.NewFromInt(2500),
		PaymentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Method:      "BANK_TRANSFER",
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.PropertyID != "prop-1" || captured.Method != domain.PaymentMethodBankTransfer {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.PaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Number != "PAY-202501-0001" {
		t.Fatalf("expected payment number, got %s", resp.Number)
	}
}

func TestPaymentHandler_Approve(t *testing.T) {
	approvedBy := "treasurer-1"
	handler := NewPaymentHandler(&paymentServiceStub{
		approveFn: func(ctx context.Context, paymentID, by string) (*domain.Payment, error) {
			if paymentID != "pay-1" || by != approvedBy {
				t.Fatalf("unexpected approval args %s %s", paymentID, by)
			}
			return &domain.Payment{ID: paymentID, Status: domain.PaymentStatusConfirmed, ApprovedBy: &approvedBy}, nil
		},
	}, &allocationServiceStub{})

	body, _ := json.Marshal(dto.ApprovePaymentRequest{ApprovedBy: approvedBy})
	req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/approve", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "pay-1")
	rec := httptest.NewRecorder()

	handler.Approve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "CONFIRMED" {
		t.Fatalf("expected CONFIRMED, got %s", resp.Status)
	}
}

func TestPaymentHandler_Approve_NotPending(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		approveFn: func(ctx context.Context, paymentID, by string) (*domain.Payment, error) {
			return nil, domain.ErrPaymentNotPending
		},
	}, &allocationServiceStub{})

	body, _ := json.Marshal(dto.ApprovePaymentRequest{ApprovedBy: "treasurer-1"})
	req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/approve", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "pay-1")
	rec := httptest.NewRecorder()

	handler.Approve(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPaymentHandler_AllocateManual_ExceedsOutstanding(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{}, &allocationServiceStub{
		manualFn: func(ctx context.Context, paymentID, invoiceID string, amount decimal.Decimal) (*domain.PaymentAllocation, error) {
			return nil, domain.ErrExceedsOutstanding
		},
	})

	body, _ := json.Marshal(dto.ManualAllocationRequest{
		InvoiceID: "inv-1",
		Amount:    decimal.NewFromInt(9999),
	})
	req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/allocate/manual", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "pay-1")
	rec := httptest.NewRecorder()

	handler.AllocateManual(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_Allocate(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{}, &allocationServiceStub{
		fifoFn: func(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
			return []*domain.PaymentAllocation{
				{ID: "alloc-1", PaymentID: paymentID, InvoiceID: "inv-1", Amount: decimal.NewFromInt(1000)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/allocate", nil)
	req = setChiURLParam(req, "id", "pay-1")
	rec := httptest.NewRecorder()

	handler.Allocate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.AllocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].InvoiceID != "inv-1" {
		t.Fatalf("unexpected allocations %+v", resp)
	}
}

func TestPaymentHandler_AllocateProperty(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{}, &allocationServiceStub{
		bulkFn: func(ctx context.Context, propertyID string) (*usecase.BulkAllocationSummary, error) {
			if propertyID != "prop-1" {
				t.Fatalf("unexpected property %s", propertyID)
			}
			return &usecase.BulkAllocationSummary{
				PaymentsProcessed:  2,
				AllocationsCreated: 3,
				TotalAllocated:     decimal.NewFromInt(4500),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/properties/prop-1/allocate", nil)
	req = setChiURLParam(req, "propertyID", "prop-1")
	rec := httptest.NewRecorder()

	handler.AllocateProperty(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp usecase.BulkAllocationSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PaymentsProcessed != 2 || resp.AllocationsCreated != 3 {
		t.Fatalf("unexpected summary %+v", resp)
	}
}
