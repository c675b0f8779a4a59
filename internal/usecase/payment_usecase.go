package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// LedgerService is the slice of the ledger the payment workflow needs.
type LedgerService interface {
	CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error)
}

// Allocator runs a FIFO allocation pass for one payment.
type Allocator interface {
	AllocateFIFO(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

// PaymentUseCase handles the payment approval workflow and its accounting
// side effects.
type PaymentUseCase struct {
	txManager   TransactionManager
	paymentRepo PaymentRepository
	accountRepo AccountRepository
	bridgeRepo  PaymentJournalRepository
	counterRepo CounterRepository
	ledger      LedgerService
	allocator   Allocator
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	paymentRepo PaymentRepository,
	accountRepo AccountRepository,
	bridgeRepo PaymentJournalRepository,
	counterRepo CounterRepository,
	ledger LedgerService,
	allocator Allocator,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		bridgeRepo:  bridgeRepo,
		counterRepo: counterRepo,
		ledger:      ledger,
		allocator:   allocator,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreatePaymentInput represents input for recording a payment.
type CreatePaymentInput struct {
	PropertyID      string
	VillageID       string
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Method          domain.PaymentMethod
	ReferenceNumber string
	Notes           string
}

// CreatePayment records an incoming payment as PENDING. Nothing touches the
// ledger until approval.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seq, err := uc.counterRepo.Next(ctx, tx, domain.PaymentCounterKey(input.PaymentDate))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:              uc.idGen.Generate(),
		Number:          domain.PaymentNumber(input.PaymentDate, seq),
		PropertyID:      input.PropertyID,
		VillageID:       input.VillageID,
		Amount:          input.Amount,
		PaymentDate:     input.PaymentDate,
		Method:          input.Method,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
		Status:          domain.PaymentStatusPending,
		AllocatedAmount: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ApprovePayment confirms a pending payment. The approval commits on its
// own; the journal entry and the FIFO allocation pass run afterwards and
// their failures are logged for repair, never rolled back into the approval.
func (uc *PaymentUseCase) ApprovePayment(ctx context.Context, paymentID, approvedBy string) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, domain.ErrPaymentNotPending
	}

	if err := uc.paymentRepo.Approve(ctx, paymentID, approvedBy, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.recordPaymentJournal(ctx, payment); err != nil {
		uc.logger.Error().Err(err).
			Str("payment_id", paymentID).
			Msg("payment approved but journal entry failed; needs repair")
	}

	if _, err := uc.allocator.AllocateFIFO(ctx, paymentID); err != nil {
		uc.logger.Error().Err(err).
			Str("payment_id", paymentID).
			Msg("payment approved but allocation failed; needs repair")
	}

	return uc.paymentRepo.GetByID(ctx, paymentID)
}

// RejectPayment declines a pending payment with a reason.
func (uc *PaymentUseCase) RejectPayment(ctx context.Context, paymentID, rejectedBy, reason string) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, domain.ErrPaymentNotPending
	}

	if err := uc.paymentRepo.Reject(ctx, paymentID, rejectedBy, reason, time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.paymentRepo.GetByID(ctx, paymentID)
}

// recordPaymentJournal posts the Dr Bank / Cr Common Fee Revenue entry for an
// approved payment, at most once per payment.
func (uc *PaymentUseCase) recordPaymentJournal(ctx context.Context, payment *domain.Payment) error {
	exists, err := uc.bridgeRepo.ExistsForPayment(ctx, payment.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrJournalExistsForPayment
	}

	bank, err := uc.accountRepo.GetByCode(ctx, domain.CodeBankCurrent)
	if err != nil {
		return fmt.Errorf("bank account lookup: %w", err)
	}
	revenue, err := uc.accountRepo.GetByCode(ctx, domain.CodeCommonFeeRevenue)
	if err != nil {
		return fmt.Errorf("revenue account lookup: %w", err)
	}

	refType := domain.ReferenceTypePayment
	entry, err := uc.ledger.CreateEntry(ctx, CreateEntryInput{
		Description:     fmt.Sprintf("รับชำระค่าส่วนกลาง %s", payment.Number),
		Date:            payment.PaymentDate,
		ReferenceType:   &refType,
		ReferenceID:     &payment.ID,
		ReferenceNumber: &payment.Number,
		AutoPost:        true,
		Lines: []domain.EntryLineInput{
			{AccountID: bank.ID, Debit: payment.Amount, Description: payment.Number},
			{AccountID: revenue.ID, Credit: payment.Amount, Description: payment.Number},
		},
	})
	if err != nil {
		return err
	}

	return uc.bridgeRepo.Create(ctx, &domain.PaymentJournalLink{
		ID:        uc.idGen.Generate(),
		PaymentID: payment.ID,
		EntryID:   entry.ID,
		CreatedAt: time.Now().UTC(),
	})
}
