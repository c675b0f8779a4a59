package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "PENDING"
	InvoiceStatusPaid     InvoiceStatus = "PAID"
	InvoiceStatusOverdue  InvoiceStatus = "OVERDUE"
	InvoiceStatusCanceled InvoiceStatus = "CANCELED"
)

// Invoice is an amount owed by a property, settled by payment allocations.
// PaidAmount is derived from the allocation rows, never stored directly.
type Invoice struct {
	ID              string
	PropertyID      string
	Amount          decimal.Decimal
	DueDate         time.Time
	Status          InvoiceStatus
	Description     string
	ReferenceNumber string
	PaidAmount      decimal.Decimal
	PaidAt          *time.Time
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Outstanding is the unpaid remainder, never negative.
func (i *Invoice) Outstanding() decimal.Decimal {
	remaining := i.Amount.Sub(i.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
