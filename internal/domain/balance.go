package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerBalance is the accumulated activity of one account within
// one accounting period. There is at most one row per (account, period).
type GeneralLedgerBalance struct {
	ID               string
	AccountID        string
	PeriodID         string
	BeginningBalance decimal.Decimal
	DebitTotal       decimal.Decimal
	CreditTotal      decimal.Decimal
	EndingBalance    decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Apply adds a posted line's amounts to the running totals and recomputes
// the ending balance from the account's normal balance side.
func (b *GeneralLedgerBalance) Apply(debit, credit decimal.Decimal, normal BalanceType) {
	b.DebitTotal = b.DebitTotal.Add(debit)
	b.CreditTotal = b.CreditTotal.Add(credit)

	if normal == BalanceTypeDebit {
		b.EndingBalance = b.BeginningBalance.Add(b.DebitTotal).Sub(b.CreditTotal)
	} else {
		b.EndingBalance = b.BeginningBalance.Add(b.CreditTotal).Sub(b.DebitTotal)
	}
}
