package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// AccountResponse represents a chart of accounts node in API responses.
type AccountResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	NameEN           string    `json:"name_en,omitempty"`
	Type             string    `json:"type"`
	NormalBalance    string    `json:"normal_balance"`
	ParentID         *string   `json:"parent_id,omitempty"`
	Level            int       `json:"level"`
	Active           bool      `json:"active"`
	SystemAccount    bool      `json:"system_account"`
	AllowManualEntry bool      `json:"allow_manual_entry"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Code:             a.Code,
		Name:             a.Name,
		NameEN:           a.NameEN,
		Type:             string(a.Type),
		NormalBalance:    string(a.NormalBalance),
		ParentID:         a.ParentID,
		Level:            a.Level,
		Active:           a.Active,
		SystemAccount:    a.SystemAccount,
		AllowManualEntry: a.AllowManualEntry,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BootstrapResponse reports how many default accounts were seeded.
type BootstrapResponse struct {
	Created int `json:"created"`
}

// PeriodResponse represents an accounting period in API responses.
type PeriodResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	FiscalYear int        `json:"fiscal_year"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Closed     bool       `json:"closed"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ClosedBy   *string    `json:"closed_by,omitempty"`
}

// PeriodFromDomain converts a domain period to a response.
func PeriodFromDomain(p *domain.AccountingPeriod) *PeriodResponse {
	return &PeriodResponse{
		ID:         p.ID,
		Name:       p.Name,
		Type:       string(p.Type),
		FiscalYear: p.FiscalYear,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Closed:     p.Closed,
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
	}
}

// EntryLineResponse represents a journal entry line in API responses.
type EntryLineResponse struct {
	ID          string          `json:"id"`
	LineNumber  int             `json:"line_number"`
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Date            time.Time           `json:"date"`
	Description     string              `json:"description"`
	ReferenceType   *string             `json:"reference_type,omitempty"`
	ReferenceID     *string             `json:"reference_id,omitempty"`
	ReferenceNumber *string             `json:"reference_number,omitempty"`
	TotalDebit      decimal.Decimal     `json:"total_debit"`
	TotalCredit     decimal.Decimal     `json:"total_credit"`
	Status          string              `json:"status"`
	PeriodID        string              `json:"period_id"`
	PostedAt        *time.Time          `json:"posted_at,omitempty"`
	Lines           []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	resp := &EntryResponse{
		ID:              e.ID,
		Number:          e.Number,
		Date:            e.Date,
		Description:     e.Description,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		ReferenceNumber: e.ReferenceNumber,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		Status:          string(e.Status),
		PeriodID:        e.PeriodID,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, EntryLineResponse{
			ID:          line.ID,
			LineNumber:  line.LineNumber,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a journal entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	PropertyID      string          `json:"property_id"`
	VillageID       string          `json:"village_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	Unallocated     decimal.Decimal `json:"unallocated"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedBy      *string         `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		Number:          p.Number,
		PropertyID:      p.PropertyID,
		VillageID:       p.VillageID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		Method:          string(p.Method),
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		Status:          string(p.Status),
		AllocatedAmount: p.AllocatedAmount,
		Unallocated:     p.Unallocated(),
		ApprovedBy:      p.ApprovedBy,
		ApprovedAt:      p.ApprovedAt,
		RejectedBy:      p.RejectedBy,
		RejectedAt:      p.RejectedAt,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
	}
}

// AllocationResponse represents a payment allocation in API responses.
type AllocationResponse struct {
	ID          string          `json:"id"`
	PaymentID   string          `json:"payment_id"`
	InvoiceID   string          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	AllocatedAt time.Time       `json:"allocated_at"`
}

// AllocationFromDomain converts a domain allocation to a response.
func AllocationFromDomain(a *domain.PaymentAllocation) *AllocationResponse {
	return &AllocationResponse{
		ID:          a.ID,
		PaymentID:   a.PaymentID,
		InvoiceID:   a.InvoiceID,
		Amount:      a.Amount,
		AllocatedAt: a.AllocatedAt,
	}
}

// AllocationsFromDomain converts domain allocations to responses.
func AllocationsFromDomain(allocations []*domain.PaymentAllocation) []*AllocationResponse {
	result := make([]*AllocationResponse, len(allocations))
	for i, a := range allocations {
		result[i] = AllocationFromDomain(a)
	}
	return result
}

// StatementResponse represents a bank statement in API responses.
type StatementResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	VillageID      string          `json:"village_id"`
	BankName       string          `json:"bank_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	AccountName    string          `json:"account_name,omitempty"`
	StatementDate  time.Time       `json:"statement_date"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Status         string          `json:"status"`
	OCRConfidence  float64         `json:"ocr_confidence"`
	Notes          string          `json:"notes,omitempty"`
	UploadedBy     string          `json:"uploaded_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.BankStatement) *StatementResponse {
	return &StatementResponse{
		ID:             s.ID,
		Number:         s.Number,
		VillageID:      s.VillageID,
		BankName:       s.BankName,
		AccountNumber:  s.AccountNumber,
		AccountName:    s.AccountName,
		StatementDate:  s.StatementDate,
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Status:         string(s.Status),
		OCRConfidence:  s.OCRConfidence,
		Notes:          s.Notes,
		UploadedBy:     s.UploadedBy,
		CreatedAt:      s.CreatedAt,
	}
}

// BankTransactionResponse represents a statement row in API responses.
type BankTransactionResponse struct {
	ID              string          `json:"id"`
	StatementID     string          `json:"statement_id"`
	Date            time.Time       `json:"date"`
	Time            string          `json:"time,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	Status          string          `json:"status"`
	MatchedPayment  *string         `json:"matched_payment,omitempty"`
	MatchConfidence *float64        `json:"match_confidence,omitempty"`
	ReviewedBy      *string         `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNotes     string          `json:"review_notes,omitempty"`
}

// BankTransactionFromDomain converts a domain transaction to a response.
func BankTransactionFromDomain(t *domain.BankTransaction) *BankTransactionResponse {
	return &BankTransactionResponse{
		ID:              t.ID,
		StatementID:     t.StatementID,
		Date:            t.Date,
		Time:            t.Time,
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
		CreditAmount:    t.CreditAmount,
		DebitAmount:     t.DebitAmount,
		Status:          string(t.Status),
		MatchedPayment:  t.MatchedPayment,
		MatchConfidence: t.MatchConfidence,
		ReviewedBy:      t.ReviewedBy,
		ReviewedAt:      t.ReviewedAt,
		ReviewNotes:     t.ReviewNotes,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
