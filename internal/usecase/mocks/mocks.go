package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc     func(ctx context.Context, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	GetByCodeFunc  func(ctx context.Context, code string) (*domain.Account, error)
	ListFunc       func(ctx context.Context, onlyActive bool) ([]*domain.Account, error)
	ListByTypeFunc func(ctx context.Context, accountType domain.AccountType, onlyActive bool) ([]*domain.Account, error)
	SetActiveFunc  func(ctx context.Context, id string, active bool) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Code == code {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, onlyActive)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, acc := range m.accounts {
		if onlyActive && !acc.Active {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MockAccountRepository) ListByType(ctx context.Context, accountType domain.AccountType, onlyActive bool) ([]*domain.Account, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, accountType, onlyActive)
	}
	all, _ := m.List(ctx, onlyActive)
	var out []*domain.Account
	for _, acc := range all {
		if acc.Type == accountType {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, id string, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Active = active
	return nil
}

// MockPeriodRepository is a mock implementation of PeriodRepository.
type MockPeriodRepository struct {
	mu      sync.RWMutex
	periods map[string]*domain.AccountingPeriod

	GetByIDFunc          func(ctx context.Context, id string) (*domain.AccountingPeriod, error)
	FindOpenCoveringFunc func(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	FindCoveringFunc     func(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
	ListBetweenFunc      func(ctx context.Context, start, end time.Time) ([]*domain.AccountingPeriod, error)
	CreateFunc           func(ctx context.Context, period *domain.AccountingPeriod) error
	CloseFunc            func(ctx context.Context, id string, closedAt time.Time, closedBy string) error
}

func NewMockPeriodRepository() *MockPeriodRepository {
	return &MockPeriodRepository{
		periods: make(map[string]*domain.AccountingPeriod),
	}
}

func (m *MockPeriodRepository) GetByID(ctx context.Context, id string) (*domain.AccountingPeriod, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.periods[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPeriodNotFound
}

func (m *MockPeriodRepository) FindOpenCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	if m.FindOpenCoveringFunc != nil {
		return m.FindOpenCoveringFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.periods {
		if !p.Closed && p.Contains(date) {
			return p, nil
		}
	}
	return nil, domain.ErrPeriodNotFound
}

func (m *MockPeriodRepository) FindCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	if m.FindCoveringFunc != nil {
		return m.FindCoveringFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.periods {
		if p.Contains(date) {
			return p, nil
		}
	}
	return nil, domain.ErrPeriodNotFound
}

func (m *MockPeriodRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.AccountingPeriod, error) {
	if m.ListBetweenFunc != nil {
		return m.ListBetweenFunc(ctx, start, end)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AccountingPeriod
	for _, p := range m.periods {
		if !p.EndDate.Before(start) && !p.StartDate.After(end) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *MockPeriodRepository) Create(ctx context.Context, period *domain.AccountingPeriod) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.periods {
		if p.Name == period.Name && p.FiscalYear == period.FiscalYear {
			return domain.ErrDuplicatePeriod
		}
	}
	m.periods[period.ID] = period
	return nil
}

func (m *MockPeriodRepository) Close(ctx context.Context, id string, closedAt time.Time, closedBy string) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, id, closedAt, closedBy)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return domain.ErrPeriodNotFound
	}
	p.Closed = true
	p.ClosedAt = &closedAt
	p.ClosedBy = &closedBy
	return nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateWithLinesFunc  func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error)
	MarkPostedFunc       func(ctx context.Context, tx usecase.Transaction, id string, postedAt time.Time) error
	ListByPeriodFunc     func(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

func (m *MockJournalRepository) CreateWithLines(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateWithLinesFunc != nil {
		return m.CreateWithLinesFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, tx usecase.Transaction, id string, postedAt time.Time) error {
	if m.MarkPostedFunc != nil {
		return m.MarkPostedFunc(ctx, tx, id, postedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	e.Status = domain.EntryStatusPosted
	e.PostedAt = &postedAt
	return nil
}

func (m *MockJournalRepository) ListByPeriod(ctx context.Context, periodID string, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, periodID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.JournalEntry
	for _, e := range m.entries {
		if e.PeriodID == periodID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// MockCounterRepository is a mock implementation of CounterRepository.
type MockCounterRepository struct {
	mu       sync.Mutex
	counters map[string]int64

	NextFunc func(ctx context.Context, tx usecase.Transaction, name string) (int64, error)
}

func NewMockCounterRepository() *MockCounterRepository {
	return &MockCounterRepository{
		counters: make(map[string]int64),
	}
}

func (m *MockCounterRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, tx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
	return m.counters[name], nil
}

// MockBalanceRepository is a mock implementation of BalanceRepository.
// Rows are keyed by account and period.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]*domain.GeneralLedgerBalance

	GetOrCreateForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountID, periodID string) (*domain.GeneralLedgerBalance, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, balance *domain.GeneralLedgerBalance) error
	ListByPeriodFunc         func(ctx context.Context, periodID string) ([]*domain.GeneralLedgerBalance, error)
	ListByPeriodsFunc        func(ctx context.Context, periodIDs []string) ([]*domain.GeneralLedgerBalance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[string]*domain.GeneralLedgerBalance),
	}
}

func balanceKey(accountID, periodID string) string {
	return accountID + "|" + periodID
}

func (m *MockBalanceRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, accountID, periodID string) (*domain.GeneralLedgerBalance, error) {
	if m.GetOrCreateForUpdateFunc != nil {
		return m.GetOrCreateForUpdateFunc(ctx, tx, accountID, periodID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := balanceKey(accountID, periodID)
	if b, ok := m.balances[key]; ok {
		return b, nil
	}
	b := &domain.GeneralLedgerBalance{
		ID:               key,
		AccountID:        accountID,
		PeriodID:         periodID,
		BeginningBalance: decimal.Zero,
		DebitTotal:       decimal.Zero,
		CreditTotal:      decimal.Zero,
		EndingBalance:    decimal.Zero,
	}
	m.balances[key] = b
	return b, nil
}

func (m *MockBalanceRepository) Update(ctx context.Context, tx usecase.Transaction, balance *domain.GeneralLedgerBalance) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balanceKey(balance.AccountID, balance.PeriodID)] = balance
	return nil
}

func (m *MockBalanceRepository) ListByPeriod(ctx context.Context, periodID string) ([]*domain.GeneralLedgerBalance, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, periodID)
	}
	return m.ListByPeriods(ctx, []string{periodID})
}

func (m *MockBalanceRepository) ListByPeriods(ctx context.Context, periodIDs []string) ([]*domain.GeneralLedgerBalance, error) {
	if m.ListByPeriodsFunc != nil {
		return m.ListByPeriodsFunc(ctx, periodIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]bool, len(periodIDs))
	for _, id := range periodIDs {
		wanted[id] = true
	}
	var out []*domain.GeneralLedgerBalance
	for _, b := range m.balances {
		if wanted[b.PeriodID] {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Balance returns the stored row for inspection in tests.
func (m *MockBalanceRepository) Balance(accountID, periodID string) *domain.GeneralLedgerBalance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[balanceKey(accountID, periodID)]
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	GetByIDFunc                        func(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdateFunc               func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error)
	ListPendingByPropertyForUpdateFunc func(ctx context.Context, tx usecase.Transaction, propertyID string) ([]*domain.Invoice, error)
	SetStatusFunc                      func(ctx context.Context, tx usecase.Transaction, id string, status domain.InvoiceStatus, paidAt *time.Time) error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInvoiceRepository) ListPendingByPropertyForUpdate(ctx context.Context, tx usecase.Transaction, propertyID string) ([]*domain.Invoice, error) {
	if m.ListPendingByPropertyForUpdateFunc != nil {
		return m.ListPendingByPropertyForUpdateFunc(ctx, tx, propertyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Invoice
	for _, inv := range m.invoices {
		if inv.PropertyID == propertyID && inv.Status == domain.InvoiceStatusPending && !inv.Archived {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockInvoiceRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.InvoiceStatus, paidAt *time.Time) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, tx, id, status, paidAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = status
	inv.PaidAt = paidAt
	return nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFunc              func(ctx context.Context, payment *domain.Payment) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error)
	SetStatusFunc           func(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus) error
	ApproveFunc             func(ctx context.Context, id, approvedBy string, at time.Time) error
	RejectFunc              func(ctx context.Context, id, rejectedBy, reason string, at time.Time) error
	ListUnreconciledFunc    func(ctx context.Context, villageID string, from, to time.Time) ([]*domain.Payment, error)
	ListWithUnallocatedFunc func(ctx context.Context, propertyID string) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPaymentRepository) SetStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

func (m *MockPaymentRepository) Approve(ctx context.Context, id, approvedBy string, at time.Time) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id, approvedBy, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = domain.PaymentStatusConfirmed
	p.ApprovedBy = &approvedBy
	p.ApprovedAt = &at
	return nil
}

func (m *MockPaymentRepository) Reject(ctx context.Context, id, rejectedBy, reason string, at time.Time) error {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, id, rejectedBy, reason, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = domain.PaymentStatusCanceled
	p.RejectedBy = &rejectedBy
	p.RejectedAt = &at
	p.RejectionReason = reason
	return nil
}

func (m *MockPaymentRepository) ListUnreconciled(ctx context.Context, villageID string, from, to time.Time) ([]*domain.Payment, error) {
	if m.ListUnreconciledFunc != nil {
		return m.ListUnreconciledFunc(ctx, villageID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.VillageID != villageID || p.Archived {
			continue
		}
		if p.PaymentDate.Before(from) || p.PaymentDate.After(to) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out, nil
}

func (m *MockPaymentRepository) ListWithUnallocated(ctx context.Context, propertyID string) ([]*domain.Payment, error) {
	if m.ListWithUnallocatedFunc != nil {
		return m.ListWithUnallocatedFunc(ctx, propertyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.PropertyID == propertyID && p.Unallocated().IsPositive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

// MockAllocationRepository is a mock implementation of AllocationRepository.
type MockAllocationRepository struct {
	mu          sync.RWMutex
	allocations []*domain.PaymentAllocation

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, allocation *domain.PaymentAllocation) error
	SumByInvoiceFunc  func(ctx context.Context, tx usecase.Transaction, invoiceID string) (decimal.Decimal, error)
	SumByPaymentFunc  func(ctx context.Context, tx usecase.Transaction, paymentID string) (decimal.Decimal, error)
	ListByPaymentFunc func(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

func NewMockAllocationRepository() *MockAllocationRepository {
	return &MockAllocationRepository{}
}

func (m *MockAllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.PaymentAllocation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, allocation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations = append(m.allocations, allocation)
	return nil
}

func (m *MockAllocationRepository) SumByInvoice(ctx context.Context, tx usecase.Transaction, invoiceID string) (decimal.Decimal, error) {
	if m.SumByInvoiceFunc != nil {
		return m.SumByInvoiceFunc(ctx, tx, invoiceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, a := range m.allocations {
		if a.InvoiceID == invoiceID {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (m *MockAllocationRepository) SumByPayment(ctx context.Context, tx usecase.Transaction, paymentID string) (decimal.Decimal, error) {
	if m.SumByPaymentFunc != nil {
		return m.SumByPaymentFunc(ctx, tx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, a := range m.allocations {
		if a.PaymentID == paymentID {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (m *MockAllocationRepository) ListByPayment(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	if m.ListByPaymentFunc != nil {
		return m.ListByPaymentFunc(ctx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.PaymentAllocation
	for _, a := range m.allocations {
		if a.PaymentID == paymentID {
			out = append(out, a)
		}
	}
	return out, nil
}

// MockPaymentJournalRepository is a mock implementation of
// PaymentJournalRepository.
type MockPaymentJournalRepository struct {
	mu    sync.RWMutex
	links map[string]*domain.PaymentJournalLink

	CreateFunc           func(ctx context.Context, link *domain.PaymentJournalLink) error
	ExistsForPaymentFunc func(ctx context.Context, paymentID string) (bool, error)
}

func NewMockPaymentJournalRepository() *MockPaymentJournalRepository {
	return &MockPaymentJournalRepository{
		links: make(map[string]*domain.PaymentJournalLink),
	}
}

func (m *MockPaymentJournalRepository) Create(ctx context.Context, link *domain.PaymentJournalLink) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, link)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[link.PaymentID]; ok {
		return domain.ErrJournalExistsForPayment
	}
	m.links[link.PaymentID] = link
	return nil
}

func (m *MockPaymentJournalRepository) ExistsForPayment(ctx context.Context, paymentID string) (bool, error) {
	if m.ExistsForPaymentFunc != nil {
		return m.ExistsForPaymentFunc(ctx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.links[paymentID]
	return ok, nil
}

// MockStatementRepository is a mock implementation of StatementRepository.
type MockStatementRepository struct {
	mu         sync.RWMutex
	statements map[string]*domain.BankStatement

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, statement *domain.BankStatement) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.BankStatement, error)
	GetByFileHashFunc func(ctx context.Context, hash string) (*domain.BankStatement, error)
	UpdateFunc        func(ctx context.Context, statement *domain.BankStatement) error
	SetStatusFunc     func(ctx context.Context, id string, status domain.StatementStatus, notes string) error
}

func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{
		statements: make(map[string]*domain.BankStatement),
	}
}

func (m *MockStatementRepository) Create(ctx context.Context, tx usecase.Transaction, statement *domain.BankStatement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, statement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[statement.ID] = statement
	return nil
}

func (m *MockStatementRepository) GetByID(ctx context.Context, id string) (*domain.BankStatement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.statements[id]; ok {
		return s, nil
	}
	return nil, domain.ErrStatementNotFound
}

func (m *MockStatementRepository) GetByFileHash(ctx context.Context, hash string) (*domain.BankStatement, error) {
	if m.GetByFileHashFunc != nil {
		return m.GetByFileHashFunc(ctx, hash)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.statements {
		if s.FileHash == hash {
			return s, nil
		}
	}
	return nil, domain.ErrStatementNotFound
}

func (m *MockStatementRepository) Update(ctx context.Context, statement *domain.BankStatement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, statement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[statement.ID] = statement
	return nil
}

func (m *MockStatementRepository) SetStatus(ctx context.Context, id string, status domain.StatementStatus, notes string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status, notes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statements[id]
	if !ok {
		return domain.ErrStatementNotFound
	}
	s.Status = status
	if notes != "" {
		s.Notes = notes
	}
	return nil
}

// MockBankTransactionRepository is a mock implementation of
// BankTransactionRepository. Insertion order is preserved.
type MockBankTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.BankTransaction

	CreateBatchFunc          func(ctx context.Context, transactions []*domain.BankTransaction) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.BankTransaction, error)
	ListUnmatchedCreditsFunc func(ctx context.Context, statementID string) ([]*domain.BankTransaction, error)
	CountByStatusFunc        func(ctx context.Context, statementID string) (map[domain.ReconciliationStatus]int, error)
	UpdateMatchFunc          func(ctx context.Context, transaction *domain.BankTransaction) error
	FindMatchForPaymentFunc  func(ctx context.Context, paymentID string) (*domain.BankTransaction, error)
}

func NewMockBankTransactionRepository() *MockBankTransactionRepository {
	return &MockBankTransactionRepository{}
}

func (m *MockBankTransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.BankTransaction) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, transactions)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transactions...)
	return nil
}

func (m *MockBankTransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockBankTransactionRepository) ListUnmatchedCredits(ctx context.Context, statementID string) ([]*domain.BankTransaction, error) {
	if m.ListUnmatchedCreditsFunc != nil {
		return m.ListUnmatchedCreditsFunc(ctx, statementID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.BankTransaction
	for _, t := range m.transactions {
		if t.StatementID == statementID && t.Status == domain.ReconciliationUnmatched && t.IsCredit() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockBankTransactionRepository) CountByStatus(ctx context.Context, statementID string) (map[domain.ReconciliationStatus]int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, statementID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[domain.ReconciliationStatus]int)
	for _, t := range m.transactions {
		if t.StatementID == statementID {
			counts[t.Status]++
		}
	}
	return counts, nil
}

func (m *MockBankTransactionRepository) UpdateMatch(ctx context.Context, transaction *domain.BankTransaction) error {
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.transactions {
		if t.ID == transaction.ID {
			m.transactions[i] = transaction
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

func (m *MockBankTransactionRepository) FindMatchForPayment(ctx context.Context, paymentID string) (*domain.BankTransaction, error) {
	if m.FindMatchForPaymentFunc != nil {
		return m.FindMatchForPaymentFunc(ctx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.MatchedPayment != nil && *t.MatchedPayment == paymentID {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once with no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockLedgerService is a mock implementation of LedgerService.
type MockLedgerService struct {
	mu      sync.Mutex
	Entries []*domain.JournalEntry

	CreateEntryFunc func(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error)
}

func NewMockLedgerService() *MockLedgerService {
	return &MockLedgerService{}
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error) {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	totalDebit, totalCredit, err := domain.ValidateLines(input.Lines)
	if err != nil {
		return nil, err
	}
	entry := &domain.JournalEntry{
		ID:              fmt.Sprintf("entry-%04d", len(m.Entries)+1),
		Number:          domain.EntryNumber(input.Date, int64(len(m.Entries)+1)),
		Date:            input.Date,
		Description:     input.Description,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		ReferenceNumber: input.ReferenceNumber,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		Status:          domain.EntryStatusPosted,
	}
	m.Entries = append(m.Entries, entry)
	return entry, nil
}

// MockAllocator is a mock implementation of Allocator.
type MockAllocator struct {
	mu    sync.Mutex
	Calls []string

	AllocateFIFOFunc func(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error)
}

func NewMockAllocator() *MockAllocator {
	return &MockAllocator{}
}

func (m *MockAllocator) AllocateFIFO(ctx context.Context, paymentID string) ([]*domain.PaymentAllocation, error) {
	if m.AllocateFIFOFunc != nil {
		return m.AllocateFIFOFunc(ctx, paymentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, paymentID)
	return nil, nil
}

// MockReconciler is a mock implementation of Reconciler.
type MockReconciler struct {
	mu    sync.Mutex
	Calls []string

	AutoReconcileFunc func(ctx context.Context, statementID string) (*usecase.ReconcileSummary, error)
}

func NewMockReconciler() *MockReconciler {
	return &MockReconciler{}
}

func (m *MockReconciler) AutoReconcile(ctx context.Context, statementID string) (*usecase.ReconcileSummary, error) {
	if m.AutoReconcileFunc != nil {
		return m.AutoReconcileFunc(ctx, statementID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, statementID)
	return &usecase.ReconcileSummary{StatementID: statementID}, nil
}
