package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/tests/testutil"
)

func TestPaymentApprovalAndAllocationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestAPI(t, testDB)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/bootstrap", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Record a payment before any invoices exist, so approval's own
	// allocation pass has nothing to settle.
	body, _ := json.Marshal(dto.CreatePaymentRequest{
		PropertyID:  "prop-1",
		VillageID:   "vil-1",
		Amount:      decimal.NewFromInt(1500),
		PaymentDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Method:      "BANK_TRANSFER",
	})
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payment dto.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payment))
	require.Equal(t, "PENDING", payment.Status)
	require.NotEmpty(t, payment.Number)

	// Approval confirms the payment and books its journal entry.
	body, _ = json.Marshal(dto.ApprovePaymentRequest{ApprovedBy: "treasurer-1"})
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+payment.ID+"/approve", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var approved dto.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	require.Equal(t, "CONFIRMED", approved.Status)

	// A second approval must be rejected.
	body, _ = json.Marshal(dto.ApprovePaymentRequest{ApprovedBy: "treasurer-1"})
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+payment.ID+"/approve", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusConflict, w.Code)

	// Two open invoices for the property, oldest first.
	testDB.CreateTestInvoice(ctx, "prop-1", decimal.NewFromInt(900), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	testDB.CreateTestInvoice(ctx, "prop-1", decimal.NewFromInt(600), time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC))

	// FIFO allocation settles the oldest invoice first.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+payment.ID+"/allocate", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var allocations []*dto.AllocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &allocations))
	require.Len(t, allocations, 2)
	require.True(t, allocations[0].Amount.Equal(decimal.NewFromInt(900)), "got %s", allocations[0].Amount)
	require.True(t, allocations[1].Amount.Equal(decimal.NewFromInt(600)), "got %s", allocations[1].Amount)

	// The payment ends fully allocated.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+payment.ID, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var settled dto.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settled))
	require.Equal(t, "FULLY_ALLOCATED", settled.Status)
	require.True(t, settled.Unallocated.IsZero(), "got %s", settled.Unallocated)
}
