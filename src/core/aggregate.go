package core

import (
	"context"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

const forecastWindowDays = 180

var hundred = decimal.NewFromInt(100)

// Aggregator computes read-only derived views over the ledger. It never
// mutates stored state and never caches; every call re-reads the store.
type Aggregator struct {
	store LedgerStore
}

func NewAggregator(store LedgerStore) *Aggregator {
	return &Aggregator{store: store}
}

func expenseType() *models.TransactionType {
	t := models.TransactionExpense
	return &t
}

func incomeType() *models.TransactionType {
	t := models.TransactionIncome
	return &t
}

// BudgetSpending sums the owner's expense transactions inside the budget's
// period window (and category, if the budget has one). A zero-amount budget
// reports percentage_used 0 rather than dividing by zero.
func (a *Aggregator) BudgetSpending(ctx context.Context, budget *models.Budget) (*models.BudgetWithSpending, error) {
	filter := TransactionFilter{
		CategoryID: budget.CategoryID,
		Type:       expenseType(),
		StartDate:  &budget.StartDate,
		EndDate:    budget.EndDate,
	}
	spent, err := a.store.SumTransactions(ctx, budget.UserID, filter)
	if err != nil {
		return nil, err
	}

	pct := 0.0
	if budget.Amount.IsPositive() {
		pct, _ = spent.Div(budget.Amount).Mul(hundred).Float64()
	}

	return &models.BudgetWithSpending{
		Budget:         *budget,
		Spent:          spent,
		Remaining:      budget.Amount.Sub(spent),
		PercentageUsed: pct,
	}, nil
}

// DashboardSummary aggregates the caller's current standing: active-account
// balance total, income/expense sums for the current calendar month, active
// budget and goal counts, and the five most recent transactions.
func (a *Aggregator) DashboardSummary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	totalBalance, err := a.store.SumActiveAccountBalances(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	income, err := a.store.SumTransactions(ctx, userID, TransactionFilter{
		Type:      incomeType(),
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return nil, err
	}
	expenses, err := a.store.SumTransactions(ctx, userID, TransactionFilter{
		Type:      expenseType(),
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return nil, err
	}

	activeBudgets, err := a.store.CountActiveBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	activeGoals, err := a.store.CountActiveGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := a.store.ListTransactions(ctx, userID, TransactionFilter{}, 0, 5)
	if err != nil {
		return nil, err
	}
	recentOut := make([]models.RecentTransaction, 0, len(recent))
	for _, t := range recent {
		recentOut = append(recentOut, models.RecentTransaction{
			ID:              t.ID,
			Amount:          t.Amount,
			TransactionType: t.TransactionType,
			Description:     t.Description,
			Date:            t.Date,
		})
	}

	return &models.DashboardSummary{
		TotalBalance:       totalBalance,
		MonthIncome:        income,
		MonthExpenses:      expenses,
		MonthNet:           income.Sub(expenses),
		ActiveBudgets:      activeBudgets,
		ActiveGoals:        activeGoals,
		RecentTransactions: recentOut,
	}, nil
}

// ExpensesByCategory groups the caller's expense transactions by category
// (including the uncategorized bucket) and sums amounts per group.
func (a *Aggregator) ExpensesByCategory(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]models.CategoryExpense, error) {
	totals, err := a.store.SumExpensesByCategory(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	out := make([]models.CategoryExpense, 0, len(totals))
	for _, t := range totals {
		out = append(out, models.CategoryExpense{CategoryID: t.CategoryID, Total: t.Total})
	}
	return out, nil
}

// IncomeVsExpenses sums the caller's income and expense transactions within an
// optional date range.
func (a *Aggregator) IncomeVsExpenses(ctx context.Context, userID int64, startDate, endDate *time.Time) (*models.IncomeVsExpenses, error) {
	income, err := a.store.SumTransactions(ctx, userID, TransactionFilter{
		Type:      incomeType(),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}
	expenses, err := a.store.SumTransactions(ctx, userID, TransactionFilter{
		Type:      expenseType(),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}
	return &models.IncomeVsExpenses{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}, nil
}

// ForecastExpenses projects the flat average of the caller's expense amounts
// over the trailing 180 days forward for the requested number of months
// (default 3). Each projected month is labeled YYYY-MM of today + 30*i days.
// This is intentionally a naive flat-average model, not a trend fit.
func (a *Aggregator) ForecastExpenses(ctx context.Context, userID int64, months int) ([]models.MonthlyForecast, error) {
	if months <= 0 {
		months = 3
	}
	now := time.Now()
	windowStart := now.AddDate(0, 0, -forecastWindowDays)

	avg, err := a.store.AverageTransactionAmount(ctx, userID, TransactionFilter{
		Type:      expenseType(),
		StartDate: &windowStart,
		EndDate:   &now,
	})
	if err != nil {
		return nil, err
	}
	amount, _ := avg.Float64()

	forecasts := make([]models.MonthlyForecast, 0, months)
	for i := 1; i <= months; i++ {
		forecasts = append(forecasts, models.MonthlyForecast{
			Month:            now.AddDate(0, 0, 30*i).Format("2006-01"),
			ForecastedAmount: amount,
		})
	}
	return forecasts, nil
}
