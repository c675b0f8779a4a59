package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the journal entry workflow state.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "DRAFT"
	EntryStatusPosted EntryStatus = "POSTED"
	// EntryStatusReversed is declared for reversal support but no reversal
	// procedure is implemented yet.
	EntryStatusReversed EntryStatus = "REVERSED"
)

// Reference types linking an entry to its originating record.
const (
	ReferenceTypePayment    = "payment"
	ReferenceTypeSpending   = "spending"
	ReferenceTypeAdjustment = "adjustment"
)

// JournalEntry is a balanced double-entry transaction.
type JournalEntry struct {
	ID              string
	Number          string
	Date            time.Time
	Description     string
	ReferenceType   *string
	ReferenceID     *string
	ReferenceNumber *string
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	Status          EntryStatus
	PeriodID        string
	PostedAt        *time.Time
	Lines           []JournalEntryLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// JournalEntryLine is a single debit or credit within an entry.
type JournalEntryLine struct {
	ID          string
	EntryID     string
	LineNumber  int
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// EntryLineInput is the caller-supplied shape of a line.
type EntryLineInput struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// ValidateLines checks the double-entry invariants and returns the totals.
// An entry needs at least two lines, each line exactly one positive side,
// and equal positive debit and credit totals.
func ValidateLines(lines []EntryLineInput) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, ErrTooFewLines
	}

	totalDebit = decimal.Zero
	totalCredit = decimal.Zero

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, i+1)
		}

		debit := line.Debit.IsPositive()
		credit := line.Credit.IsPositive()

		if debit == credit {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d", ErrInvalidLine, i+1)
		}

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf(
			"%w: debits %s, credits %s", ErrUnbalancedEntry, totalDebit, totalCredit)
	}

	return totalDebit, totalCredit, nil
}

// EntryNumber formats a sequential journal entry number scoped to the
// entry date's calendar month, e.g. JE-2025-01-0042.
func EntryNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("JE-%s-%04d", date.Format("2006-01"), seq)
}

// EntryCounterKey is the per-month counter name used to serialize numbering.
func EntryCounterKey(date time.Time) string {
	return "JE-" + date.Format("2006-01")
}
