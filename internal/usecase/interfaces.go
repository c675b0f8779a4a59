package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Account, error)
	ListByType(ctx context.Context, accountType domain.AccountType, onlyActive bool) ([]*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// PeriodRepository defines data access for accounting periods.
type PeriodRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AccountingPeriod, error)
	// FindOpenCovering returns the open period containing the date, or
	// domain.ErrPeriodNotFound.
	FindOpenCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	// FindCovering returns the period containing the date regardless of
	// closed state, or domain.ErrPeriodNotFound.
	FindCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]*domain.AccountingPeriod, error)
	// Create returns domain.ErrDuplicatePeriod when the (name, fiscal year)
	// pair already exists.
	Create(ctx context.Context, period *domain.AccountingPeriod) error
	Close(ctx context.Context, id string, closedAt time.Time, closedBy string) error
}

// JournalRepository defines data access for journal entries and their lines.
type JournalRepository interface {
	CreateWithLines(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.JournalEntry, error)
	MarkPosted(ctx context.Context, tx Transaction, id string, postedAt time.Time) error
	ListByPeriod(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error)
}

// CounterRepository hands out gap-free sequence numbers. Next must be called
// inside a transaction; the counter row serializes concurrent callers.
type CounterRepository interface {
	Next(ctx context.Context, tx Transaction, name string) (int64, error)
}

// BalanceRepository defines data access for general ledger balances.
type BalanceRepository interface {
	// GetOrCreateForUpdate locks the (account, period) row, creating a zero
	// row first when none exists.
	GetOrCreateForUpdate(ctx context.Context, tx Transaction, accountID, periodID string) (*domain.GeneralLedgerBalance, error)
	Update(ctx context.Context, tx Transaction, balance *domain.GeneralLedgerBalance) error
	ListByPeriod(ctx context.Context, periodID string) ([]*domain.GeneralLedgerBalance, error)
	ListByPeriods(ctx context.Context, periodIDs []string) ([]*domain.GeneralLedgerBalance, error)
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	// ListPendingByPropertyForUpdate returns unarchived PENDING invoices
	// oldest-first and locks them against concurrent allocation.
	ListPendingByPropertyForUpdate(ctx context.Context, tx Transaction, propertyID string) ([]*domain.Invoice, error)
	SetStatus(ctx context.Context, tx Transaction, id string, status domain.InvoiceStatus, paidAt *time.Time) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	SetStatus(ctx context.Context, tx Transaction, id string, status domain.PaymentStatus) error
	Approve(ctx context.Context, id, approvedBy string, at time.Time) error
	Reject(ctx context.Context, id, rejectedBy, reason string, at time.Time) error
	// ListUnreconciled returns unarchived payments dated within the window
	// that no bank transaction is matched to.
	ListUnreconciled(ctx context.Context, villageID string, from, to time.Time) ([]*domain.Payment, error)
	ListWithUnallocated(ctx context.Context, propertyID string) ([]*domain.Payment, error)
}

// AllocationRepository defines data access for payment-invoice allocations.
// Allocation rows are append-only.
type AllocationRepository interface {
	Create(ctx context.Context, tx Transaction, allocation *domain.PaymentAllocation) error
	SumByInvoice(ctx context.Context, tx Transaction, invoiceID string) (decimal.Decimal, error)
	SumByPayment(ctx context.Context, tx Transaction, paymentID string) (decimal.Decimal, error)
	ListByPayment(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

// PaymentJournalRepository links payments to the journal entries recording
// them, at most one entry per payment.
type PaymentJournalRepository interface {
	// Create returns domain.ErrJournalExistsForPayment when the payment
	// already has an entry.
	Create(ctx context.Context, link *domain.PaymentJournalLink) error
	ExistsForPayment(ctx context.Context, paymentID string) (bool, error)
}

// StatementRepository defines data access for bank statements.
type StatementRepository interface {
	Create(ctx context.Context, tx Transaction, statement *domain.BankStatement) error
	GetByID(ctx context.Context, id string) (*domain.BankStatement, error)
	// GetByFileHash returns domain.ErrStatementNotFound when no statement
	// has the hash.
	GetByFileHash(ctx context.Context, hash string) (*domain.BankStatement, error)
	Update(ctx context.Context, statement *domain.BankStatement) error
	SetStatus(ctx context.Context, id string, status domain.StatementStatus, notes string) error
}

// BankTransactionRepository defines data access for statement transactions.
type BankTransactionRepository interface {
	CreateBatch(ctx context.Context, transactions []*domain.BankTransaction) error
	GetByID(ctx context.Context, id string) (*domain.BankTransaction, error)
	ListUnmatchedCredits(ctx context.Context, statementID string) ([]*domain.BankTransaction, error)
	CountByStatus(ctx context.Context, statementID string) (map[domain.ReconciliationStatus]int, error)
	// UpdateMatch persists the match fields: status, matched payment,
	// confidence and review metadata.
	UpdateMatch(ctx context.Context, transaction *domain.BankTransaction) error
	// FindMatchForPayment returns the transaction currently matched to the
	// payment, or domain.ErrTransactionNotFound.
	FindMatchForPayment(ctx context.Context, paymentID string) (*domain.BankTransaction, error)
}

// StatementExtractor is the OCR collaborator. Its output is untrusted and
// validated before use.
type StatementExtractor interface {
	Extract(ctx context.Context, filePath string) (*domain.StatementExtraction, error)
	Checksum(ctx context.Context, filePath string) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for report projections.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
