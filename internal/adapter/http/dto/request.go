package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// CreateAccountRequest represents a request to create a chart of accounts node.
type CreateAccountRequest struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	NameEN           string  `json:"name_en,omitempty"`
	Type             string  `json:"type"`
	NormalBalance    string  `json:"normal_balance,omitempty"`
	ParentID         *string `json:"parent_id,omitempty"`
	Level            int     `json:"level,omitempty"`
	AllowManualEntry bool    `json:"allow_manual_entry"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code:             r.Code,
		Name:             r.Name,
		NameEN:           r.NameEN,
		Type:             domain.AccountType(r.Type),
		NormalBalance:    domain.BalanceType(r.NormalBalance),
		ParentID:         r.ParentID,
		Level:            r.Level,
		AllowManualEntry: r.AllowManualEntry,
	}
}

// EntryLineRequest represents a single debit or credit line.
type EntryLineRequest struct {
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// CreateEntryRequest represents a request to create a journal entry.
type CreateEntryRequest struct {
	Description     string             `json:"description"`
	Date            time.Time          `json:"date"`
	Lines           []EntryLineRequest `json:"lines"`
	ReferenceType   *string            `json:"reference_type,omitempty"`
	ReferenceID     *string            `json:"reference_id,omitempty"`
	ReferenceNumber *string            `json:"reference_number,omitempty"`
	AutoPost        bool               `json:"auto_post"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	lines := make([]domain.EntryLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.EntryLineInput{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return usecase.CreateEntryInput{
		Description:     r.Description,
		Date:            r.Date,
		Lines:           lines,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
		ReferenceNumber: r.ReferenceNumber,
		AutoPost:        r.AutoPost,
	}
}

// ClosePeriodRequest represents a request to close an accounting period.
type ClosePeriodRequest struct {
	ClosedBy string `json:"closed_by"`
}

// CreatePaymentRequest represents a request to record a payment.
type CreatePaymentRequest struct {
	PropertyID      string          `json:"property_id"`
	VillageID       string          `json:"village_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		PropertyID:      r.PropertyID,
		VillageID:       r.VillageID,
		Amount:          r.Amount,
		PaymentDate:     r.PaymentDate,
		Method:          domain.PaymentMethod(r.Method),
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
	}
}

// ApprovePaymentRequest represents a payment approval.
type ApprovePaymentRequest struct {
	ApprovedBy string `json:"approved_by"`
}

// RejectPaymentRequest represents a payment rejection.
type RejectPaymentRequest struct {
	RejectedBy string `json:"rejected_by"`
	Reason     string `json:"reason"`
}

// ManualAllocationRequest represents a manual payment-to-invoice allocation.
type ManualAllocationRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// RecordSpendingRequest represents a request to record an expense.
type RecordSpendingRequest struct {
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               time.Time       `json:"date"`
	ExpenseAccountCode string          `json:"expense_account_code"`
	ReferenceID        *string         `json:"reference_id,omitempty"`
	ReferenceNumber    *string         `json:"reference_number,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordSpendingRequest) ToUseCaseInput() usecase.RecordSpendingInput {
	return usecase.RecordSpendingInput{
		Description:        r.Description,
		Amount:             r.Amount,
		Date:               r.Date,
		ExpenseAccountCode: r.ExpenseAccountCode,
		ReferenceID:        r.ReferenceID,
		ReferenceNumber:    r.ReferenceNumber,
	}
}

// IngestStatementRequest represents a request to ingest an uploaded
// statement file.
type IngestStatementRequest struct {
	FilePath      string    `json:"file_path"`
	VillageID     string    `json:"village_id"`
	UploadedBy    string    `json:"uploaded_by"`
	StatementDate time.Time `json:"statement_date"`
}

// ToUseCaseInput converts to use case input.
func (r *IngestStatementRequest) ToUseCaseInput() usecase.IngestStatementInput {
	return usecase.IngestStatementInput{
		FilePath:      r.FilePath,
		VillageID:     r.VillageID,
		UploadedBy:    r.UploadedBy,
		StatementDate: r.StatementDate,
	}
}

// ManualMatchRequest represents a manual reconciliation match.
type ManualMatchRequest struct {
	PaymentID  string `json:"payment_id"`
	ReviewedBy string `json:"reviewed_by"`
	Notes      string `json:"notes,omitempty"`
}

// UnmatchRequest represents a reconciliation unmatch.
type UnmatchRequest struct {
	ReviewedBy string `json:"reviewed_by"`
	Reason     string `json:"reason"`
}
