package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrDuplicateAccountCode = errors.New("account code already exists")
	ErrInvalidBalanceType   = errors.New("normal balance must be DEBIT or CREDIT")

	// Balance errors
	ErrBalanceNotFound = errors.New("general ledger balance not found")

	// Period errors
	ErrPeriodNotFound  = errors.New("accounting period not found")
	ErrDuplicatePeriod = errors.New("accounting period already exists")

	// Journal entry errors
	ErrEntryNotFound   = errors.New("journal entry not found")
	ErrUnbalancedEntry = errors.New("journal entry debits must equal credits")
	ErrTooFewLines     = errors.New("journal entry must have at least 2 lines")
	ErrInvalidLine     = errors.New("line must have exactly one positive side")
	ErrEntryNotDraft   = errors.New("only draft entries can be posted")
	ErrInvalidAmount   = errors.New("amount must be positive")

	// Allocation errors
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentNotPending  = errors.New("payment is not pending")
	ErrExceedsUnallocated = errors.New("amount exceeds unallocated payment amount")
	ErrExceedsOutstanding = errors.New("amount exceeds invoice outstanding amount")

	// Payment journal bridge errors
	ErrJournalExistsForPayment = errors.New("journal entry already exists for this payment")

	// Reconciliation errors
	ErrStatementNotFound     = errors.New("bank statement not found")
	ErrDuplicateStatement    = errors.New("statement file already uploaded")
	ErrTransactionNotFound   = errors.New("bank transaction not found")
	ErrPaymentAlreadyMatched = errors.New("payment is already matched to another transaction")
	ErrAmountDiffTooLarge    = errors.New("amount difference exceeds manual match tolerance")
	ErrDateDiffTooLarge      = errors.New("date difference exceeds manual match tolerance")
)
