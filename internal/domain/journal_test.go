package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.EntryLineInput
		wantErr error
		total   string
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("1000")},
				{AccountID: "revenue", Credit: dec("1000")},
			},
			total: "1000",
		},
		{
			name: "balanced split credit",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("1500")},
				{AccountID: "revenue", Credit: dec("1000")},
				{AccountID: "penalty", Credit: dec("500")},
			},
			total: "1500",
		},
		{
			name: "unbalanced entry",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("1000")},
				{AccountID: "revenue", Credit: dec("900")},
			},
			wantErr: domain.ErrUnbalancedEntry,
		},
		{
			name: "single line",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("1000")},
			},
			wantErr: domain.ErrTooFewLines,
		},
		{
			name: "line with both sides",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("1000"), Credit: dec("1000")},
				{AccountID: "revenue", Credit: dec("1000")},
			},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name: "line with neither side",
			lines: []domain.EntryLineInput{
				{AccountID: "bank"},
				{AccountID: "revenue", Credit: dec("1000")},
			},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name: "negative amount",
			lines: []domain.EntryLineInput{
				{AccountID: "bank", Debit: dec("-1000")},
				{AccountID: "revenue", Credit: dec("-1000")},
			},
			wantErr: domain.ErrInvalidLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totalDebit, totalCredit, err := domain.ValidateLines(tt.lines)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !totalDebit.Equal(dec(tt.total)) || !totalCredit.Equal(dec(tt.total)) {
				t.Errorf("expected totals %s/%s, got %s/%s", tt.total, tt.total, totalDebit, totalCredit)
			}
		})
	}
}

func TestEntryNumber(t *testing.T) {
	date := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

	if got := domain.EntryNumber(date, 42); got != "JE-2025-01-0042" {
		t.Errorf("expected JE-2025-01-0042, got %s", got)
	}

	if got := domain.EntryCounterKey(date); got != "JE-2025-01" {
		t.Errorf("expected JE-2025-01, got %s", got)
	}
}
