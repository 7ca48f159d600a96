package core

import (
	"context"
	"testing"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudgetSpending(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "0.00")
	a := NewAggregator(ledger)
	ctx := context.Background()

	groceries := int64(7)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	seed := []struct {
		amount   string
		typ      models.TransactionType
		category *int64
		date     time.Time
	}{
		{"120.00", models.TransactionExpense, &groceries, start.AddDate(0, 0, 5)},
		{"60.00", models.TransactionExpense, &groceries, start.AddDate(0, 0, 12)},
		// outside the window
		{"40.00", models.TransactionExpense, &groceries, start.AddDate(0, -1, 0)},
		// different category
		{"500.00", models.TransactionExpense, nil, start.AddDate(0, 0, 6)},
		// income never counts as spending
		{"900.00", models.TransactionIncome, &groceries, start.AddDate(0, 0, 7)},
	}
	for i, s := range seed {
		ledger.transactions[int64(i+1)] = &models.Transaction{
			ID:              int64(i + 1),
			UserID:          10,
			AccountID:       1,
			CategoryID:      s.category,
			Amount:          dec(s.amount),
			TransactionType: s.typ,
			Date:            s.date,
		}
	}

	budget := &models.Budget{
		ID:         1,
		UserID:     10,
		CategoryID: &groceries,
		Name:       "Groceries",
		Amount:     dec("200.00"),
		Period:     models.BudgetMonthly,
		StartDate:  start,
		EndDate:    &end,
	}

	spending, err := a.BudgetSpending(ctx, budget)
	assert.NoError(t, err)
	assert.True(t, spending.Spent.Equal(dec("180.00")))
	assert.True(t, spending.Remaining.Equal(dec("20.00")))
	assert.InDelta(t, 90.0, spending.PercentageUsed, 0.001)
}

func TestBudgetSpending_ZeroAmount(t *testing.T) {
	ledger := newFakeLedger()
	a := NewAggregator(ledger)

	budget := &models.Budget{
		UserID:    10,
		Name:      "Empty",
		Amount:    decimal.Zero,
		StartDate: time.Now().AddDate(0, -1, 0),
	}
	spending, err := a.BudgetSpending(context.Background(), budget)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, spending.PercentageUsed)
}

func TestDashboardSummary(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	ledger.addAccount(2, 10, "50.00")
	closed := ledger.addAccount(3, 10, "999.00")
	closed.IsActive = false
	ledger.addAccount(4, 99, "777.00")

	now := time.Now()
	ledger.transactions[1] = &models.Transaction{
		ID: 1, UserID: 10, AccountID: 1,
		Amount: dec("1000.00"), TransactionType: models.TransactionIncome, Date: now,
	}
	ledger.transactions[2] = &models.Transaction{
		ID: 2, UserID: 10, AccountID: 1,
		Amount: dec("250.00"), TransactionType: models.TransactionExpense, Date: now,
	}
	// previous month, excluded from the month sums
	ledger.transactions[3] = &models.Transaction{
		ID: 3, UserID: 10, AccountID: 1,
		Amount: dec("80.00"), TransactionType: models.TransactionExpense, Date: now.AddDate(0, -2, 0),
	}

	a := NewAggregator(ledger)
	summary, err := a.DashboardSummary(context.Background(), 10)
	assert.NoError(t, err)
	assert.True(t, summary.TotalBalance.Equal(dec("150.00")))
	assert.True(t, summary.MonthIncome.Equal(dec("1000.00")))
	assert.True(t, summary.MonthExpenses.Equal(dec("250.00")))
	assert.True(t, summary.MonthNet.Equal(dec("750.00")))
	assert.Len(t, summary.RecentTransactions, 3)
}

func TestDashboardSummary_RecentTrimmedToFive(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "0.00")
	for i := 1; i <= 8; i++ {
		ledger.transactions[int64(i)] = &models.Transaction{
			ID: int64(i), UserID: 10, AccountID: 1,
			Amount:          dec("10.00"),
			TransactionType: models.TransactionExpense,
			Date:            time.Now().AddDate(0, 0, -i),
		}
	}

	a := NewAggregator(ledger)
	summary, err := a.DashboardSummary(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, summary.RecentTransactions, 5)
	// newest first
	assert.Equal(t, int64(1), summary.RecentTransactions[0].ID)
}

func TestExpensesByCategory(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "0.00")
	food := int64(1)
	now := time.Now()

	ledger.transactions[1] = &models.Transaction{
		ID: 1, UserID: 10, AccountID: 1, CategoryID: &food,
		Amount: dec("30.00"), TransactionType: models.TransactionExpense, Date: now,
	}
	ledger.transactions[2] = &models.Transaction{
		ID: 2, UserID: 10, AccountID: 1, CategoryID: &food,
		Amount: dec("20.00"), TransactionType: models.TransactionExpense, Date: now,
	}
	ledger.transactions[3] = &models.Transaction{
		ID: 3, UserID: 10, AccountID: 1,
		Amount: dec("15.00"), TransactionType: models.TransactionExpense, Date: now,
	}

	a := NewAggregator(ledger)
	out, err := a.ExpensesByCategory(context.Background(), 10, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	totals := make(map[int64]decimal.Decimal)
	uncategorized := decimal.Zero
	for _, e := range out {
		if e.CategoryID == nil {
			uncategorized = e.Total
			continue
		}
		totals[*e.CategoryID] = e.Total
	}
	assert.True(t, totals[food].Equal(dec("50.00")))
	assert.True(t, uncategorized.Equal(dec("15.00")))
}

func TestIncomeVsExpenses(t *testing.T) {
	store := &MockLedgerStore{}
	store.SumTransactionsFunc = func(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
		if filter.Type != nil && *filter.Type == models.TransactionIncome {
			return dec("3000.00"), nil
		}
		return dec("1250.00"), nil
	}

	a := NewAggregator(store)
	out, err := a.IncomeVsExpenses(context.Background(), 10, nil, nil)
	assert.NoError(t, err)
	assert.True(t, out.Income.Equal(dec("3000.00")))
	assert.True(t, out.Expenses.Equal(dec("1250.00")))
	assert.True(t, out.Net.Equal(dec("1750.00")))
}

func TestForecastExpenses(t *testing.T) {
	store := &MockLedgerStore{}
	var gotFilter TransactionFilter
	store.AverageTransactionAmountFunc = func(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error) {
		gotFilter = filter
		return dec("420.50"), nil
	}

	a := NewAggregator(store)
	out, err := a.ForecastExpenses(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.Len(t, out, 3)
	for i, f := range out {
		assert.InDelta(t, 420.50, f.ForecastedAmount, 0.001)
		expected := time.Now().AddDate(0, 0, 30*(i+1)).Format("2006-01")
		assert.Equal(t, expected, f.Month)
	}

	assert.NotNil(t, gotFilter.Type)
	assert.Equal(t, models.TransactionExpense, *gotFilter.Type)
	assert.NotNil(t, gotFilter.StartDate)

	out, err = a.ForecastExpenses(context.Background(), 10, 6)
	assert.NoError(t, err)
	assert.Len(t, out, 6)
}
