package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// AllocationEpsilon is the residual below which an invoice or payment is
	// treated as settled (in decimal string)
	AllocationEpsilon = "0.01"

	// ReconciliationWindowDays widens the statement period on both sides when
	// collecting candidate payments
	ReconciliationWindowDays = 3

	// ReportCacheTTL is how long report projections are cached
	ReportCacheTTL = 30 * time.Second
)
