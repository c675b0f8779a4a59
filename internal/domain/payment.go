package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodQRCode        PaymentMethod = "QR_CODE"
	PaymentMethodCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentMethodMobileBanking PaymentMethod = "MOBILE_BANKING"
)

// PaymentStatus tracks approval and allocation progress.
type PaymentStatus string

const (
	PaymentStatusPending            PaymentStatus = "PENDING"
	PaymentStatusConfirmed          PaymentStatus = "CONFIRMED"
	PaymentStatusPartiallyAllocated PaymentStatus = "PARTIALLY_ALLOCATED"
	PaymentStatusFullyAllocated     PaymentStatus = "FULLY_ALLOCATED"
	PaymentStatusCanceled           PaymentStatus = "CANCELED"
)

// Payment is money received from a property.
// AllocatedAmount is derived from the allocation rows.
type Payment struct {
	ID              string
	Number          string
	PropertyID      string
	VillageID       string
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Method          PaymentMethod
	ReferenceNumber string
	Notes           string
	Status          PaymentStatus
	AllocatedAmount decimal.Decimal
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason string
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Unallocated is the amount not yet applied to any invoice, never negative.
func (p *Payment) Unallocated() decimal.Decimal {
	remaining := p.Amount.Sub(p.AllocatedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PaymentAllocation applies part of a payment to an invoice. Rows are
// append-only; per-invoice and per-payment sums never exceed the originals.
type PaymentAllocation struct {
	ID          string
	PaymentID   string
	InvoiceID   string
	Amount      decimal.Decimal
	AllocatedAt time.Time
}

// PaymentJournalLink ties a payment to the journal entry that recorded it.
// At most one entry per payment.
type PaymentJournalLink struct {
	ID        string
	PaymentID string
	EntryID   string
	CreatedAt time.Time
}

// PaymentNumber formats a sequential payment number scoped to a calendar
// month, e.g. PAY-202501-0007.
func PaymentNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("PAY-%s-%04d", date.Format("200601"), seq)
}

// PaymentCounterKey is the per-month counter name for payment numbering.
func PaymentCounterKey(date time.Time) string {
	return "PAY-" + date.Format("200601")
}
