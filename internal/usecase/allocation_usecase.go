package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// AllocationUseCase applies payments to invoices. All mutation happens under
// row locks on the payment and the invoices so concurrent allocators for the
// same property serialize instead of double-spending.
type AllocationUseCase struct {
	txManager      TransactionManager
	paymentRepo    PaymentRepository
	invoiceRepo    InvoiceRepository
	allocationRepo AllocationRepository
	idGen          IDGenerator
	logger         zerolog.Logger

	epsilon decimal.Decimal
}

// NewAllocationUseCase creates a new AllocationUseCase.
func NewAllocationUseCase(
	txManager TransactionManager,
	paymentRepo PaymentRepository,
	invoiceRepo InvoiceRepository,
	allocationRepo AllocationRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *AllocationUseCase {
	return &AllocationUseCase{
		txManager:      txManager,
		paymentRepo:    paymentRepo,
		invoiceRepo:    invoiceRepo,
		allocationRepo: allocationRepo,
		idGen:          idGen,
		logger:         logger,
		epsilon:        decimal.RequireFromString(AllocationEpsilon),
	}
}

// AllocateFIFO spreads a payment's unallocated remainder over the property's
// pending invoices oldest-first. A payment with nothing left to allocate is
// a no-op, not an error.
func (uc *AllocationUseCase) AllocateFIFO(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	allocated, err := uc.allocationRepo.SumByPayment(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	remaining := payment.Amount.Sub(allocated)
	if remaining.LessThanOrEqual(uc.epsilon) {
		return nil, tx.Commit(ctx)
	}

	invoices, err := uc.invoiceRepo.ListPendingByPropertyForUpdate(ctx, tx, payment.PropertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var created []*domain.PaymentAllocation

	for _, invoice := range invoices {
		if remaining.LessThanOrEqual(uc.epsilon) {
			break
		}

		paid, err := uc.allocationRepo.SumByInvoice(ctx, tx, invoice.ID)
		if err != nil {
			return nil, err
		}

		outstanding := invoice.Amount.Sub(paid)
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		take := decimal.Min(remaining, outstanding)

		allocation := &domain.PaymentAllocation{
			ID:          uc.idGen.Generate(),
			PaymentID:   payment.ID,
			InvoiceID:   invoice.ID,
			Amount:      take,
			AllocatedAt: now,
		}
		if err := uc.allocationRepo.Create(ctx, tx, allocation); err != nil {
			return nil, err
		}
		created = append(created, allocation)

		if outstanding.Sub(take).LessThanOrEqual(uc.epsilon) {
			if err := uc.invoiceRepo.SetStatus(ctx, tx, invoice.ID, domain.InvoiceStatusPaid, &now); err != nil {
				return nil, err
			}
		}

		remaining = remaining.Sub(take)
	}

	if err := uc.updatePaymentStatus(ctx, tx, payment, remaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("payment_id", paymentID).
		Int("allocations", len(created)).
		Str("remaining", remaining.String()).
		Msg("fifo allocation complete")

	return created, nil
}

// AllocateManual applies an explicit amount of a payment to a single invoice.
func (uc *AllocationUseCase) AllocateManual(ctx context.Context, paymentID, invoiceID string, amount decimal.Decimal) (*domain.PaymentAllocation, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	allocated, err := uc.allocationRepo.SumByPayment(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(payment.Amount.Sub(allocated)) {
		return nil, domain.ErrExceedsUnallocated
	}

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	paid, err := uc.allocationRepo.SumByInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	outstanding := invoice.Amount.Sub(paid)
	if amount.GreaterThan(outstanding) {
		return nil, domain.ErrExceedsOutstanding
	}

	now := time.Now().UTC()
	allocation := &domain.PaymentAllocation{
		ID:          uc.idGen.Generate(),
		PaymentID:   paymentID,
		InvoiceID:   invoiceID,
		Amount:      amount,
		AllocatedAt: now,
	}
	if err := uc.allocationRepo.Create(ctx, tx, allocation); err != nil {
		return nil, err
	}

	if outstanding.Sub(amount).LessThanOrEqual(uc.epsilon) {
		if err := uc.invoiceRepo.SetStatus(ctx, tx, invoiceID, domain.InvoiceStatusPaid, &now); err != nil {
			return nil, err
		}
	}

	remaining := payment.Amount.Sub(allocated).Sub(amount)
	if err := uc.updatePaymentStatus(ctx, tx, payment, remaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return allocation, nil
}

// BulkAllocationSummary reports what a property-wide allocation pass did.
type BulkAllocationSummary struct {
	PaymentsProcessed  int             `json:"payments_processed"`
	AllocationsCreated int             `json:"allocations_created"`
	TotalAllocated     decimal.Decimal `json:"total_allocated"`
}

// AllocateAllUnallocated runs a FIFO pass for every payment of the property
// that still has an unallocated remainder, oldest payment first.
func (uc *AllocationUseCase) AllocateAllUnallocated(ctx context.Context, propertyID string) (*BulkAllocationSummary, error) {
	payments, err := uc.paymentRepo.ListWithUnallocated(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	summary := &BulkAllocationSummary{TotalAllocated: decimal.Zero}
	for _, payment := range payments {
		allocations, err := uc.AllocateFIFO(ctx, payment.ID)
		if err != nil {
			return nil, err
		}

		summary.PaymentsProcessed++
		summary.AllocationsCreated += len(allocations)
		for _, allocation := range allocations {
			summary.TotalAllocated = summary.TotalAllocated.Add(allocation.Amount)
		}
	}

	return summary, nil
}

// ListAllocations lists the allocation rows of a payment.
func (uc *AllocationUseCase) ListAllocations(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	if _, err := uc.paymentRepo.GetByID(ctx, paymentID); err != nil {
		return nil, err
	}
	return uc.allocationRepo.ListByPayment(ctx, paymentID)
}

// updatePaymentStatus moves the payment's allocation status forward based on
// what is left. Pending payments keep their status; approval owns that
// transition.
func (uc *AllocationUseCase) updatePaymentStatus(ctx context.Context, tx Transaction, payment *domain.Payment, remaining decimal.Decimal) error {
	if payment.Status == domain.PaymentStatusPending || payment.Status == domain.PaymentStatusCanceled {
		return nil
	}

	status := payment.Status
	switch {
	case remaining.LessThanOrEqual(uc.epsilon):
		status = domain.PaymentStatusFullyAllocated
	case remaining.LessThan(payment.Amount):
		status = domain.PaymentStatusPartiallyAllocated
	}

	if status == payment.Status {
		return nil
	}
	return uc.paymentRepo.SetStatus(ctx, tx, payment.ID, status)
}
