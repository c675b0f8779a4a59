package domain

import (
	"fmt"
	"time"
)

// PeriodType is the granularity of an accounting period.
type PeriodType string

const (
	PeriodTypeMonthly   PeriodType = "MONTHLY"
	PeriodTypeQuarterly PeriodType = "QUARTERLY"
	PeriodTypeAnnual    PeriodType = "ANNUAL"
)

// AccountingPeriod is a reporting window journal entries are posted into.
type AccountingPeriod struct {
	ID         string
	Name       string
	Type       PeriodType
	FiscalYear int
	StartDate  time.Time
	EndDate    time.Time
	Closed     bool
	ClosedAt   *time.Time
	ClosedBy   *string
	CreatedAt  time.Time
}

// Contains reports whether the date falls within the period, inclusive.
func (p *AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// MonthlyPeriod builds the calendar-month period covering the given date.
func MonthlyPeriod(date time.Time) AccountingPeriod {
	year, month := date.Year(), date.Month()
	start := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return AccountingPeriod{
		Name:       fmt.Sprintf("%04d-%02d", year, int(month)),
		Type:       PeriodTypeMonthly,
		FiscalYear: year,
		StartDate:  start,
		EndDate:    end,
	}
}
