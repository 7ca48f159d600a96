package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

// MockLedgerStore is a mock implementation of LedgerStore
type MockLedgerStore struct {
	GetAccountFunc               func(ctx context.Context, accountID, userID int64) (*models.Account, error)
	GetTransactionFunc           func(ctx context.Context, transactionID, userID int64) (*models.Transaction, error)
	InsertTransactionFunc        func(ctx context.Context, txn *models.Transaction, change BalanceChange) (*models.Transaction, error)
	SaveTransactionFunc          func(ctx context.Context, txn *models.Transaction, changes []BalanceChange) (*models.Transaction, error)
	RemoveTransactionFunc        func(ctx context.Context, transactionID, userID int64, change BalanceChange) error
	SumTransactionsFunc          func(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error)
	AverageTransactionAmountFunc func(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error)
	ListTransactionsFunc         func(ctx context.Context, userID int64, filter TransactionFilter, skip, limit int) ([]models.Transaction, error)
	SumExpensesByCategoryFunc    func(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]CategoryTotal, error)
	SumActiveAccountBalancesFunc func(ctx context.Context, userID int64) (decimal.Decimal, error)
	CountActiveBudgetsFunc       func(ctx context.Context, userID int64) (int64, error)
	CountActiveGoalsFunc         func(ctx context.Context, userID int64) (int64, error)
	ListActiveBudgetsFunc        func(ctx context.Context, userID int64) ([]models.Budget, error)
}

func (m *MockLedgerStore) GetAccount(ctx context.Context, accountID, userID int64) (*models.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, accountID, userID)
	}
	return nil, nil
}

func (m *MockLedgerStore) GetTransaction(ctx context.Context, transactionID, userID int64) (*models.Transaction, error) {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, transactionID, userID)
	}
	return nil, nil
}

func (m *MockLedgerStore) InsertTransaction(ctx context.Context, txn *models.Transaction, change BalanceChange) (*models.Transaction, error) {
	if m.InsertTransactionFunc != nil {
		return m.InsertTransactionFunc(ctx, txn, change)
	}
	return txn, nil
}

func (m *MockLedgerStore) SaveTransaction(ctx context.Context, txn *models.Transaction, changes []BalanceChange) (*models.Transaction, error) {
	if m.SaveTransactionFunc != nil {
		return m.SaveTransactionFunc(ctx, txn, changes)
	}
	return txn, nil
}

func (m *MockLedgerStore) RemoveTransaction(ctx context.Context, transactionID, userID int64, change BalanceChange) error {
	if m.RemoveTransactionFunc != nil {
		return m.RemoveTransactionFunc(ctx, transactionID, userID, change)
	}
	return nil
}

func (m *MockLedgerStore) SumTransactions(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
	if m.SumTransactionsFunc != nil {
		return m.SumTransactionsFunc(ctx, userID, filter)
	}
	return decimal.Zero, nil
}

func (m *MockLedgerStore) AverageTransactionAmount(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
	if m.AverageTransactionAmountFunc != nil {
		return m.AverageTransactionAmountFunc(ctx, userID, filter)
	}
	return decimal.Zero, nil
}

func (m *MockLedgerStore) ListTransactions(ctx context.Context, userID int64, filter TransactionFilter, skip, limit int) ([]models.Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, userID, filter, skip, limit)
	}
	return nil, nil
}

func (m *MockLedgerStore) SumExpensesByCategory(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]CategoryTotal, error) {
	if m.SumExpensesByCategoryFunc != nil {
		return m.SumExpensesByCategoryFunc(ctx, userID, startDate, endDate)
	}
	return nil, nil
}

func (m *MockLedgerStore) SumActiveAccountBalances(ctx context.Context, userID int64) (decimal.Decimal, error) {
	if m.SumActiveAccountBalancesFunc != nil {
		return m.SumActiveAccountBalancesFunc(ctx, userID)
	}
	return decimal.Zero, nil
}

func (m *MockLedgerStore) CountActiveBudgets(ctx context.Context, userID int64) (int64, error) {
	if m.CountActiveBudgetsFunc != nil {
		return m.CountActiveBudgetsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockLedgerStore) CountActiveGoals(ctx context.Context, userID int64) (int64, error) {
	if m.CountActiveGoalsFunc != nil {
		return m.CountActiveGoalsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockLedgerStore) ListActiveBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	if m.ListActiveBudgetsFunc != nil {
		return m.ListActiveBudgetsFunc(ctx, userID)
	}
	return nil, nil
}

// fakeLedger is an in-memory LedgerStore. Each write method applies the row
// change and its balance deltas together, mirroring the transactional contract
// of the real store.
type fakeLedger struct {
	accounts     map[int64]*models.Account
	transactions map[int64]*models.Transaction
	nextTxnID    int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:     make(map[int64]*models.Account),
		transactions: make(map[int64]*models.Transaction),
		nextTxnID:    1,
	}
}

func (f *fakeLedger) addAccount(id, userID int64, balance string) *models.Account {
	a := &models.Account{
		ID:          id,
		UserID:      userID,
		Name:        fmt.Sprintf("account-%d", id),
		AccountType: models.AccountChecking,
		Balance:     decimal.RequireFromString(balance),
		Currency:    "USD",
		IsActive:    true,
	}
	f.accounts[id] = a
	return a
}

func (f *fakeLedger) applyChange(change BalanceChange) {
	if a, ok := f.accounts[change.AccountID]; ok {
		a.Balance = a.Balance.Add(change.Delta)
	}
}

func (f *fakeLedger) GetAccount(ctx context.Context, accountID, userID int64) (*models.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, fmt.Errorf("%w: account %d", ErrNotFound, accountID)
	}
	return a, nil
}

func (f *fakeLedger) GetTransaction(ctx context.Context, transactionID, userID int64) (*models.Transaction, error) {
	t, ok := f.transactions[transactionID]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeLedger) InsertTransaction(ctx context.Context, txn *models.Transaction, change BalanceChange) (*models.Transaction, error) {
	txn.ID = f.nextTxnID
	f.nextTxnID++
	cp := *txn
	f.transactions[txn.ID] = &cp
	f.applyChange(change)
	return txn, nil
}

func (f *fakeLedger) SaveTransaction(ctx context.Context, txn *models.Transaction, changes []BalanceChange) (*models.Transaction, error) {
	if _, ok := f.transactions[txn.ID]; !ok {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, txn.ID)
	}
	cp := *txn
	f.transactions[txn.ID] = &cp
	for _, c := range changes {
		f.applyChange(c)
	}
	return txn, nil
}

func (f *fakeLedger) RemoveTransaction(ctx context.Context, transactionID, userID int64, change BalanceChange) error {
	t, ok := f.transactions[transactionID]
	if !ok || t.UserID != userID {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
	}
	delete(f.transactions, transactionID)
	f.applyChange(change)
	return nil
}

func (f *fakeLedger) matches(t *models.Transaction, userID int64, filter TransactionFilter) bool {
	if t.UserID != userID {
		return false
	}
	if filter.AccountID != nil && t.AccountID != *filter.AccountID {
		return false
	}
	if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
		return false
	}
	if filter.Type != nil && t.TransactionType != *filter.Type {
		return false
	}
	if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (f *fakeLedger) SumTransactions(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range f.transactions {
		if f.matches(t, userID, filter) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (f *fakeLedger) AverageTransactionAmount(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	var n int64
	for _, t := range f.transactions {
		if f.matches(t, userID, filter) {
			sum = sum.Add(t.Amount)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(n)), nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context, userID int64, filter TransactionFilter, skip, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if f.matches(t, userID, filter) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) SumExpensesByCategory(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]CategoryTotal, error) {
	filter := TransactionFilter{Type: expenseType(), StartDate: startDate, EndDate: endDate}
	byCategory := make(map[int64]decimal.Decimal)
	uncategorized := decimal.Zero
	hasUncategorized := false
	for _, t := range f.transactions {
		if !f.matches(t, userID, filter) {
			continue
		}
		if t.CategoryID == nil {
			uncategorized = uncategorized.Add(t.Amount)
			hasUncategorized = true
			continue
		}
		byCategory[*t.CategoryID] = byCategory[*t.CategoryID].Add(t.Amount)
	}
	var out []CategoryTotal
	for id, total := range byCategory {
		id := id
		out = append(out, CategoryTotal{CategoryID: &id, Total: total})
	}
	if hasUncategorized {
		out = append(out, CategoryTotal{CategoryID: nil, Total: uncategorized})
	}
	return out, nil
}

func (f *fakeLedger) SumActiveAccountBalances(ctx context.Context, userID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range f.accounts {
		if a.UserID == userID && a.IsActive {
			sum = sum.Add(a.Balance)
		}
	}
	return sum, nil
}

func (f *fakeLedger) CountActiveBudgets(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}

func (f *fakeLedger) CountActiveGoals(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}

func (f *fakeLedger) ListActiveBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	return nil, nil
}
