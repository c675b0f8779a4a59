package domain_test

import (
	"testing"

	"github.com/smartvillage/accounting/internal/domain"
)

func TestValidateAccountCode(t *testing.T) {
	valid := []string{"1111-00", "4100-01", "5320-05"}
	for _, code := range valid {
		if err := domain.ValidateAccountCode(code); err != nil {
			t.Errorf("code %q should be valid: %v", code, err)
		}
	}

	invalid := []string{"", "1111", "1111-0", "111-001", "abcd-ef", "1111-001", "1111 00"}
	for _, code := range invalid {
		if err := domain.ValidateAccountCode(code); err == nil {
			t.Errorf("code %q should be rejected", code)
		}
	}
}

func TestValidateAccountLevel(t *testing.T) {
	for level := 1; level <= 5; level++ {
		if err := domain.ValidateAccountLevel(level); err != nil {
			t.Errorf("level %d should be valid: %v", level, err)
		}
	}

	for _, level := range []int{0, -1, 6, 100} {
		if err := domain.ValidateAccountLevel(level); err == nil {
			t.Errorf("level %d should be rejected", level)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := domain.ValidateAmount(dec("100.50")); err != nil {
		t.Errorf("positive amount should be valid: %v", err)
	}

	if err := domain.ValidateAmount(dec("0")); err == nil {
		t.Error("zero amount should be rejected")
	}

	if err := domain.ValidateAmount(dec("-5")); err == nil {
		t.Error("negative amount should be rejected")
	}

	if err := domain.ValidateAmount(dec("9999999999999")); err == nil {
		t.Error("amount over column capacity should be rejected")
	}
}

func TestNormalBalanceFor(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.BalanceType
	}{
		{domain.AccountTypeAsset, domain.BalanceTypeDebit},
		{domain.AccountTypeExpense, domain.BalanceTypeDebit},
		{domain.AccountTypeLiability, domain.BalanceTypeCredit},
		{domain.AccountTypeEquity, domain.BalanceTypeCredit},
		{domain.AccountTypeRevenue, domain.BalanceTypeCredit},
	}

	for _, tt := range tests {
		if got := domain.NormalBalanceFor(tt.accountType); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.accountType, tt.want, got)
		}
	}
}
