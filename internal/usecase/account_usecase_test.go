package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
	"github.com/smartvillage/accounting/internal/usecase/mocks"
)

func newAccountUseCase() (*usecase.AccountUseCase, *mocks.MockAccountRepository) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator(), zerolog.Nop())
	return uc, repo
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectedErr error
	}{
		{
			name: "valid asset account",
			input: usecase.CreateAccountInput{
				Code: "1112-02", Name: "Second bank account", Type: domain.AccountTypeAsset,
			},
		},
		{
			name: "explicit matching normal balance",
			input: usecase.CreateAccountInput{
				Code: "4100-05", Name: "Misc revenue", Type: domain.AccountTypeRevenue,
				NormalBalance: domain.BalanceTypeCredit,
			},
		},
		{
			name: "contra asset keeps its explicit credit side",
			input: usecase.CreateAccountInput{
				Code: "1219-01", Name: "Accumulated depreciation", Type: domain.AccountTypeAsset,
				NormalBalance: domain.BalanceTypeCredit,
			},
		},
		{
			name: "contra revenue keeps its explicit debit side",
			input: usecase.CreateAccountInput{
				Code: "4900-01", Name: "Fee discounts given", Type: domain.AccountTypeRevenue,
				NormalBalance: domain.BalanceTypeDebit,
			},
		},
		{
			name: "unknown normal balance value",
			input: usecase.CreateAccountInput{
				Code: "4100-06", Name: "Broken revenue", Type: domain.AccountTypeRevenue,
				NormalBalance: domain.BalanceType("BOTH"),
			},
			expectedErr: domain.ErrInvalidBalanceType,
		},
		{
			name: "malformed code",
			input: usecase.CreateAccountInput{
				Code: "abc", Name: "Bad code", Type: domain.AccountTypeAsset,
			},
			expectedErr: domain.ErrInvalidAccountCode,
		},
		{
			name: "empty name",
			input: usecase.CreateAccountInput{
				Code: "1112-03", Name: "  ", Type: domain.AccountTypeAsset,
			},
			expectedErr: domain.ErrInvalidAccountName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newAccountUseCase()
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := tt.input.NormalBalance
			if want == "" {
				want = domain.NormalBalanceFor(tt.input.Type)
			}
			if account.NormalBalance != want {
				t.Errorf("expected normal balance %s, got %s", want, account.NormalBalance)
			}
			if !account.Active {
				t.Error("new accounts should be active")
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_DuplicateCode(t *testing.T) {
	uc, _ := newAccountUseCase()

	input := usecase.CreateAccountInput{
		Code: "1112-02", Name: "Second bank account", Type: domain.AccountTypeAsset,
	}
	if _, err := uc.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.CreateAccount(context.Background(), input); !errors.Is(err, domain.ErrDuplicateAccountCode) {
		t.Fatalf("expected ErrDuplicateAccountCode, got %v", err)
	}
}

func TestAccountUseCase_Bootstrap(t *testing.T) {
	uc, repo := newAccountUseCase()

	created, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != len(domain.DefaultChartOfAccounts) {
		t.Errorf("expected %d accounts seeded, got %d", len(domain.DefaultChartOfAccounts), created)
	}

	bank, err := repo.GetByCode(context.Background(), domain.CodeBankCurrent)
	if err != nil {
		t.Fatalf("bank account should exist after bootstrap: %v", err)
	}
	if !bank.SystemAccount {
		t.Error("the bank account is a system account")
	}

	// A second run changes nothing.
	created, err = uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Errorf("bootstrap must be idempotent, created %d", created)
	}
}

func TestAccountUseCase_DeactivateAccount(t *testing.T) {
	uc, repo := newAccountUseCase()

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Code: "5340-02", Name: "Stationery", Type: domain.AccountTypeExpense,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.DeactivateAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), account.ID)
	if got.Active {
		t.Error("account should be inactive")
	}

	if err := uc.DeactivateAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
