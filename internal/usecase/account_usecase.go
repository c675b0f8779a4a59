package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/domain"
)

// AccountUseCase handles chart of accounts business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code             string
	Name             string
	NameEN           string
	Type             domain.AccountType
	NormalBalance    domain.BalanceType
	ParentID         *string
	Level            int
	AllowManualEntry bool
}

// CreateAccount validates and creates a chart of accounts node. An empty
// NormalBalance defaults to the conventional side for the account type; an
// explicit one may override it, so contra accounts stay representable.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountCode(input.Code); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if input.Level == 0 {
		input.Level = 1
	}
	if err := domain.ValidateAccountLevel(input.Level); err != nil {
		return nil, err
	}

	if input.NormalBalance == "" {
		input.NormalBalance = domain.NormalBalanceFor(input.Type)
	} else if input.NormalBalance != domain.BalanceTypeDebit && input.NormalBalance != domain.BalanceTypeCredit {
		return nil, domain.ErrInvalidBalanceType
	}

	if input.ParentID != nil {
		if _, err := uc.accountRepo.GetByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	if _, err := uc.accountRepo.GetByCode(ctx, input.Code); err == nil {
		return nil, domain.ErrDuplicateAccountCode
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:               uc.idGen.Generate(),
		Code:             input.Code,
		Name:             input.Name,
		NameEN:           input.NameEN,
		Type:             input.Type,
		NormalBalance:    input.NormalBalance,
		ParentID:         input.ParentID,
		Level:            input.Level,
		Active:           true,
		SystemAccount:    false,
		AllowManualEntry: input.AllowManualEntry,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByCode retrieves an account by its chart code.
func (uc *AccountUseCase) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return uc.accountRepo.GetByCode(ctx, code)
}

// ListAccounts lists accounts, optionally filtered by type.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, accountType *domain.AccountType, onlyActive bool) ([]*domain.Account, error) {
	if accountType != nil {
		return uc.accountRepo.ListByType(ctx, *accountType, onlyActive)
	}
	return uc.accountRepo.List(ctx, onlyActive)
}

// DeactivateAccount soft-disables an account. Historical journal lines keep
// referencing it.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.accountRepo.SetActive(ctx, id, false)
}

// Bootstrap seeds the default chart of accounts, skipping codes that already
// exist. Safe to run on every start.
func (uc *AccountUseCase) Bootstrap(ctx context.Context) (int, error) {
	created := 0
	now := time.Now().UTC()

	for _, seed := range domain.DefaultChartOfAccounts {
		_, err := uc.accountRepo.GetByCode(ctx, seed.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return created, err
		}

		account := &domain.Account{
			ID:               uc.idGen.Generate(),
			Code:             seed.Code,
			Name:             seed.Name,
			NameEN:           seed.NameEN,
			Type:             seed.Type,
			NormalBalance:    seed.NormalBalance,
			Level:            seed.Level,
			Active:           true,
			SystemAccount:    seed.System,
			AllowManualEntry: !seed.System,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if err := uc.accountRepo.Create(ctx, account); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		uc.logger.Info().Int("created", created).Msg("seeded default chart of accounts")
	}

	return created, nil
}
