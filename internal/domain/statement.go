package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatementStatus is the processing state of an uploaded bank statement.
type StatementStatus string

const (
	StatementStatusUploaded            StatementStatus = "UPLOADED"
	StatementStatusProcessing          StatementStatus = "PROCESSING"
	StatementStatusReady               StatementStatus = "READY"
	StatementStatusFailed              StatementStatus = "FAILED"
	StatementStatusReconciling         StatementStatus = "RECONCILING"
	StatementStatusReconciled          StatementStatus = "RECONCILED"
	StatementStatusPartiallyReconciled StatementStatus = "PARTIALLY_RECONCILED"
)

// ReconciliationStatus is the match state of a single bank transaction.
type ReconciliationStatus string

const (
	ReconciliationUnmatched     ReconciliationStatus = "UNMATCHED"
	ReconciliationAutoMatched   ReconciliationStatus = "AUTO_MATCHED"
	ReconciliationManualMatched ReconciliationStatus = "MANUAL_MATCHED"
	ReconciliationDisputed      ReconciliationStatus = "DISPUTED"
	ReconciliationConfirmed     ReconciliationStatus = "CONFIRMED"
)

// BankStatement is one uploaded statement file and its extracted metadata.
type BankStatement struct {
	ID             string
	Number         string
	VillageID      string
	BankName       string
	AccountNumber  string
	AccountName    string
	StatementDate  time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	FilePath       string
	FileHash       string
	Status         StatementStatus
	OCRConfidence  float64
	Notes          string
	UploadedBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BankTransaction is one statement row. Exactly one of CreditAmount and
// DebitAmount is positive.
type BankTransaction struct {
	ID              string
	StatementID     string
	Date            time.Time
	Time            string
	Description     string
	ReferenceNumber string
	CreditAmount    decimal.Decimal
	DebitAmount     decimal.Decimal
	Status          ReconciliationStatus
	MatchedPayment  *string
	MatchConfidence *float64
	ReviewedBy      *string
	ReviewedAt      *time.Time
	ReviewNotes     string
	RawText         string
	OCRConfidence   float64
	CreatedAt       time.Time
}

// IsCredit reports whether the transaction is an incoming amount.
func (t *BankTransaction) IsCredit() bool {
	return t.CreditAmount.IsPositive()
}

// Amount is the transaction's magnitude regardless of direction.
func (t *BankTransaction) Amount() decimal.Decimal {
	if t.IsCredit() {
		return t.CreditAmount
	}
	return t.DebitAmount
}

// StatementExtraction is the structured result returned by the OCR
// collaborator. It is untrusted input and validated before use.
type StatementExtraction struct {
	BankName       string
	AccountNumber  string
	AccountName    string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Confidence     float64
	Transactions   []ExtractedTransaction
}

// ExtractedTransaction is one statement row as read by OCR.
type ExtractedTransaction struct {
	Date         time.Time
	Time         string
	Description  string
	Reference    string
	CreditAmount decimal.Decimal
	DebitAmount  decimal.Decimal
	RawText      string
}

// StatementNumber formats a sequential statement number scoped to a
// calendar month, e.g. STMT-202501-003.
func StatementNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("STMT-%s-%03d", date.Format("200601"), seq)
}

// StatementCounterKey is the per-month counter name for statement numbering.
func StatementCounterKey(date time.Time) string {
	return "STMT-" + date.Format("200601")
}
