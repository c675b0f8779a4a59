package domain

import "time"

// AccountType classifies an account within the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// BalanceType is the normal balance side of an account.
type BalanceType string

const (
	BalanceTypeDebit  BalanceType = "DEBIT"
	BalanceTypeCredit BalanceType = "CREDIT"
)

// NormalBalanceFor returns the conventional normal balance for an account type.
// Assets and expenses grow with debits; everything else grows with credits.
func NormalBalanceFor(t AccountType) BalanceType {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return BalanceTypeDebit
	default:
		return BalanceTypeCredit
	}
}

// Account is a node in the chart of accounts.
type Account struct {
	ID               string
	Code             string
	Name             string
	NameEN           string
	Type             AccountType
	NormalBalance    BalanceType
	ParentID         *string
	Level            int
	Active           bool
	SystemAccount    bool
	AllowManualEntry bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
