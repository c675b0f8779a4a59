package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/smartvillage/accounting/internal/domain"
)

// PeriodUseCase handles accounting period business logic.
type PeriodUseCase struct {
	periodRepo PeriodRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewPeriodUseCase creates a new PeriodUseCase.
func NewPeriodUseCase(periodRepo PeriodRepository, idGen IDGenerator, retrier Retrier) *PeriodUseCase {
	return &PeriodUseCase{
		periodRepo: periodRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// ResolvePeriod returns the open period covering the date, creating the
// calendar-month period lazily when none exists. Concurrent resolvers for the
// same month race on the unique (name, fiscal year) constraint; the loser
// re-selects the winner's row.
func (uc *PeriodUseCase) ResolvePeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	var period *domain.AccountingPeriod

	err := uc.retrier.Retry(ctx, func() error {
		found, err := uc.periodRepo.FindOpenCovering(ctx, date)
		if err == nil {
			period = found
			return nil
		}
		if !errors.Is(err, domain.ErrPeriodNotFound) {
			return err
		}

		candidate := domain.MonthlyPeriod(date)
		candidate.ID = uc.idGen.Generate()
		candidate.CreatedAt = time.Now().UTC()

		err = uc.periodRepo.Create(ctx, &candidate)
		if err == nil {
			period = &candidate
			return nil
		}
		if errors.Is(err, domain.ErrDuplicatePeriod) {
			period, err = uc.periodRepo.FindOpenCovering(ctx, date)
			return err
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return period, nil
}

// GetPeriod retrieves a period by ID.
func (uc *PeriodUseCase) GetPeriod(ctx context.Context, id string) (*domain.AccountingPeriod, error) {
	return uc.periodRepo.GetByID(ctx, id)
}

// ClosePeriod marks a period closed. Closing is bookkeeping only; postings
// into a closed period are not rejected.
func (uc *PeriodUseCase) ClosePeriod(ctx context.Context, id, closedBy string) (*domain.AccountingPeriod, error) {
	if _, err := uc.periodRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := uc.periodRepo.Close(ctx, id, time.Now().UTC(), closedBy); err != nil {
		return nil, err
	}

	return uc.periodRepo.GetByID(ctx, id)
}
