package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

// ReportingUseCase derives financial reports from the general ledger
// balance rows. Reports never walk journal lines.
type ReportingUseCase struct {
	periodRepo  PeriodRepository
	accountRepo AccountRepository
	balanceRepo BalanceRepository
	cache       Cache
	logger      zerolog.Logger
}

// NewReportingUseCase creates a new ReportingUseCase.
func NewReportingUseCase(
	periodRepo PeriodRepository,
	accountRepo AccountRepository,
	balanceRepo BalanceRepository,
	cache Cache,
	logger zerolog.Logger,
) *ReportingUseCase {
	return &ReportingUseCase{
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		cache:       cache,
		logger:      logger,
	}
}

// TrialBalanceRow is one account's projected balance, on its debit or credit
// side depending on the normal balance.
type TrialBalanceRow struct {
	AccountCode string             `json:"account_code"`
	AccountName string             `json:"account_name"`
	AccountType domain.AccountType `json:"account_type"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
}

// TrialBalance is the full trial balance for one period.
type TrialBalance struct {
	PeriodID     string            `json:"period_id"`
	PeriodName   string            `json:"period_name"`
	AsOf         time.Time         `json:"as_of"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"total_debits"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
	Balanced     bool              `json:"balanced"`
}

// AccountAmount is one account's contribution to a report section.
type AccountAmount struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement summarizes revenue and expense movement over a date range.
type IncomeStatement struct {
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// BalanceSheet is the statement of financial position as of a date.
// CurrentEarnings carries the period's uncapitalized net income so the
// equation holds without a closing procedure.
type BalanceSheet struct {
	AsOf                 time.Time       `json:"as_of"`
	PeriodName           string          `json:"period_name"`
	Assets               []AccountAmount `json:"assets"`
	Liabilities          []AccountAmount `json:"liabilities"`
	Equity               []AccountAmount `json:"equity"`
	TotalAssets          decimal.Decimal `json:"total_assets"`
	TotalLiabilities     decimal.Decimal `json:"total_liabilities"`
	TotalEquity          decimal.Decimal `json:"total_equity"`
	CurrentEarnings      decimal.Decimal `json:"current_earnings"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilities_and_equity"`
	Balanced             bool            `json:"balanced"`
}

// TrialBalance builds the trial balance for the period covering asOf.
func (uc *ReportingUseCase) TrialBalance(ctx context.Context, asOf time.Time) (*TrialBalance, error) {
	period, err := uc.periodRepo.FindCovering(ctx, asOf)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:trial-balance:" + period.ID
	var cached TrialBalance
	if uc.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	balances, accounts, err := uc.balancesWithAccounts(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	report := &TrialBalance{
		PeriodID:     period.ID,
		PeriodName:   period.Name,
		AsOf:         asOf,
		Rows:         make([]TrialBalanceRow, 0, len(balances)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, balance := range balances {
		account := accounts[balance.AccountID]
		if account == nil || balance.EndingBalance.IsZero() {
			continue
		}

		row := TrialBalanceRow{
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.Type,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		// A negative ending balance projects onto the opposite side.
		if account.NormalBalance == domain.BalanceTypeDebit {
			row.Debit = balance.EndingBalance
		} else {
			row.Credit = balance.EndingBalance
		}
		if balance.EndingBalance.IsNegative() {
			row.Debit, row.Credit = row.Credit.Neg(), row.Debit.Neg()
		}

		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountCode < report.Rows[j].AccountCode
	})
	report.Balanced = report.TotalDebits.Equal(report.TotalCredits)

	uc.cacheSet(ctx, cacheKey, report)

	return report, nil
}

// IncomeStatement sums revenue and expense movement across all periods
// overlapping the date range. Movement, not ending balances, so partial
// ranges still report only what moved.
func (uc *ReportingUseCase) IncomeStatement(ctx context.Context, start, end time.Time) (*IncomeStatement, error) {
	periods, err := uc.periodRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	periodIDs := make([]string, 0, len(periods))
	for _, p := range periods {
		periodIDs = append(periodIDs, p.ID)
	}

	balances, err := uc.balanceRepo.ListByPeriods(ctx, periodIDs)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	revenue := map[string]decimal.Decimal{}
	expenses := map[string]decimal.Decimal{}

	for _, balance := range balances {
		account := accounts[balance.AccountID]
		if account == nil {
			continue
		}

		switch account.Type {
		case domain.AccountTypeRevenue:
			movement := balance.CreditTotal.Sub(balance.DebitTotal)
			revenue[account.ID] = revenue[account.ID].Add(movement)
		case domain.AccountTypeExpense:
			movement := balance.DebitTotal.Sub(balance.CreditTotal)
			expenses[account.ID] = expenses[account.ID].Add(movement)
		}
	}

	report := &IncomeStatement{
		StartDate:     start,
		EndDate:       end,
		Revenue:       amountSection(revenue, accounts),
		Expenses:      amountSection(expenses, accounts),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range report.Revenue {
		report.TotalRevenue = report.TotalRevenue.Add(row.Amount)
	}
	for _, row := range report.Expenses {
		report.TotalExpenses = report.TotalExpenses.Add(row.Amount)
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	return report, nil
}

// BalanceSheet builds the statement of financial position for the period
// covering asOf.
func (uc *ReportingUseCase) BalanceSheet(ctx context.Context, asOf time.Time) (*BalanceSheet, error) {
	period, err := uc.periodRepo.FindCovering(ctx, asOf)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:balance-sheet:" + period.ID
	var cached BalanceSheet
	if uc.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	balances, accounts, err := uc.balancesWithAccounts(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	assets := map[string]decimal.Decimal{}
	liabilities := map[string]decimal.Decimal{}
	equity := map[string]decimal.Decimal{}
	earnings := decimal.Zero

	for _, balance := range balances {
		account := accounts[balance.AccountID]
		if account == nil {
			continue
		}

		switch account.Type {
		case domain.AccountTypeAsset:
			assets[account.ID] = assets[account.ID].Add(balance.EndingBalance)
		case domain.AccountTypeLiability:
			liabilities[account.ID] = liabilities[account.ID].Add(balance.EndingBalance)
		case domain.AccountTypeEquity:
			equity[account.ID] = equity[account.ID].Add(balance.EndingBalance)
		case domain.AccountTypeRevenue:
			earnings = earnings.Add(balance.EndingBalance)
		case domain.AccountTypeExpense:
			earnings = earnings.Sub(balance.EndingBalance)
		}
	}

	report := &BalanceSheet{
		AsOf:            asOf,
		PeriodName:      period.Name,
		Assets:          amountSection(assets, accounts),
		Liabilities:     amountSection(liabilities, accounts),
		Equity:          amountSection(equity, accounts),
		CurrentEarnings: earnings,
	}
	for _, row := range report.Assets {
		report.TotalAssets = report.TotalAssets.Add(row.Amount)
	}
	for _, row := range report.Liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(row.Amount)
	}
	for _, row := range report.Equity {
		report.TotalEquity = report.TotalEquity.Add(row.Amount)
	}
	report.LiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity).Add(report.CurrentEarnings)
	report.Balanced = report.TotalAssets.Equal(report.LiabilitiesAndEquity)

	uc.cacheSet(ctx, cacheKey, report)

	return report, nil
}

func (uc *ReportingUseCase) balancesWithAccounts(ctx context.Context, periodID string) ([]*domain.GeneralLedgerBalance, map[string]*domain.Account, error) {
	balances, err := uc.balanceRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, nil, err
	}

	accounts, err := uc.accountIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	return balances, accounts, nil
}

func (uc *ReportingUseCase) accountIndex(ctx context.Context) (map[string]*domain.Account, error) {
	accounts, err := uc.accountRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		index[account.ID] = account
	}
	return index, nil
}

// cacheGet returns true on a cache hit. Cache failures are logged and
// treated as misses.
func (uc *ReportingUseCase) cacheGet(ctx context.Context, key string, out any) bool {
	if uc.cache == nil {
		return false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed cached report")
		return false
	}
	return true
}

func (uc *ReportingUseCase) cacheSet(ctx context.Context, key string, report any) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, string(raw), ReportCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

func amountSection(amounts map[string]decimal.Decimal, accounts map[string]*domain.Account) []AccountAmount {
	section := make([]AccountAmount, 0, len(amounts))
	for accountID, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		account := accounts[accountID]
		section = append(section, AccountAmount{
			AccountCode: account.Code,
			AccountName: account.Name,
			Amount:      amount,
		})
	}

	sort.Slice(section, func(i, j int) bool {
		return section[i].AccountCode < section[j].AccountCode
	})
	return section
}
