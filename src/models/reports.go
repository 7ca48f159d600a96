package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derived, read-only views. Monetary fields stay decimal; percentages and the
// forecast number are floats for display only.

type BudgetWithSpending struct {
	Budget
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentage_used"`
}

type GoalWithProgress struct {
	Goal
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	ProgressPercentage float64         `json:"progress_percentage"`
	DaysRemaining      *int            `json:"days_remaining"`
}

type RecentTransaction struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"type"`
	Description     *string         `json:"description"`
	Date            time.Time       `json:"date"`
}

type DashboardSummary struct {
	TotalBalance       decimal.Decimal     `json:"total_balance"`
	MonthIncome        decimal.Decimal     `json:"month_income"`
	MonthExpenses      decimal.Decimal     `json:"month_expenses"`
	MonthNet           decimal.Decimal     `json:"month_net"`
	ActiveBudgets      int64               `json:"active_budgets"`
	ActiveGoals        int64               `json:"active_goals"`
	RecentTransactions []RecentTransaction `json:"recent_transactions"`
}

type CategoryExpense struct {
	CategoryID *int64          `json:"category_id"`
	Total      decimal.Decimal `json:"total"`
}

type IncomeVsExpenses struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type MonthlyForecast struct {
	Month            string  `json:"month"`
	ForecastedAmount float64 `json:"forecasted_amount"`
}

type BudgetAlert struct {
	BudgetID     int64           `json:"budget_id"`
	BudgetName   string          `json:"budget_name"`
	Spent        decimal.Decimal `json:"spent"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Percentage   float64         `json:"percentage"`
	AlertType    string          `json:"alert_type"`
}
