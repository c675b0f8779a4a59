package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

func TestGeneralLedgerBalance_Apply(t *testing.T) {
	tests := []struct {
		name      string
		beginning string
		debit     string
		credit    string
		normal    domain.BalanceType
		want      string
	}{
		{"debit account grows with debits", "0", "1000", "0", domain.BalanceTypeDebit, "1000"},
		{"debit account shrinks with credits", "500", "0", "200", domain.BalanceTypeDebit, "300"},
		{"credit account grows with credits", "0", "0", "1000", domain.BalanceTypeCredit, "1000"},
		{"credit account shrinks with debits", "800", "300", "0", domain.BalanceTypeCredit, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := domain.GeneralLedgerBalance{
				BeginningBalance: dec(tt.beginning),
				DebitTotal:       decimal.Zero,
				CreditTotal:      decimal.Zero,
			}

			balance.Apply(dec(tt.debit), dec(tt.credit), tt.normal)

			if !balance.EndingBalance.Equal(dec(tt.want)) {
				t.Errorf("expected ending balance %s, got %s", tt.want, balance.EndingBalance)
			}
		})
	}
}

func TestGeneralLedgerBalance_ApplyAccumulates(t *testing.T) {
	balance := domain.GeneralLedgerBalance{
		BeginningBalance: decimal.Zero,
		DebitTotal:       decimal.Zero,
		CreditTotal:      decimal.Zero,
	}

	balance.Apply(dec("1000"), dec("0"), domain.BalanceTypeDebit)
	balance.Apply(dec("500"), dec("0"), domain.BalanceTypeDebit)
	balance.Apply(dec("0"), dec("200"), domain.BalanceTypeDebit)

	if !balance.DebitTotal.Equal(dec("1500")) {
		t.Errorf("expected debit total 1500, got %s", balance.DebitTotal)
	}
	if !balance.CreditTotal.Equal(dec("200")) {
		t.Errorf("expected credit total 200, got %s", balance.CreditTotal)
	}
	if !balance.EndingBalance.Equal(dec("1300")) {
		t.Errorf("expected ending balance 1300, got %s", balance.EndingBalance)
	}
}

func TestMonthlyPeriod(t *testing.T) {
	date := time.Date(2025, time.December, 15, 13, 45, 0, 0, time.UTC)
	period := domain.MonthlyPeriod(date)

	if period.Name != "2025-12" {
		t.Errorf("expected name 2025-12, got %s", period.Name)
	}
	if period.FiscalYear != 2025 {
		t.Errorf("expected fiscal year 2025, got %d", period.FiscalYear)
	}
	if !period.Contains(date) {
		t.Error("period should contain its source date")
	}
	if !period.Contains(time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("period should contain the last day of the month")
	}
	if period.Contains(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("period should not contain the first day of the next month")
	}
}

func TestInvoiceOutstanding(t *testing.T) {
	invoice := domain.Invoice{Amount: dec("3000"), PaidAmount: dec("1000")}
	if !invoice.Outstanding().Equal(dec("2000")) {
		t.Errorf("expected outstanding 2000, got %s", invoice.Outstanding())
	}

	overpaid := domain.Invoice{Amount: dec("3000"), PaidAmount: dec("3000.01")}
	if !overpaid.Outstanding().IsZero() {
		t.Errorf("outstanding must never be negative, got %s", overpaid.Outstanding())
	}
}

func TestPaymentUnallocated(t *testing.T) {
	payment := domain.Payment{Amount: dec("5000"), AllocatedAmount: dec("5000")}
	if !payment.Unallocated().IsZero() {
		t.Errorf("expected zero unallocated, got %s", payment.Unallocated())
	}
}
