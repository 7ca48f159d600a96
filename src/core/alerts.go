package core

import (
	"context"

	"fintrack-server/src/models"
)

// Alert thresholds as percentage of budget spent.
const (
	alertWarningThreshold  = 80.0
	alertCriticalThreshold = 100.0
)

// AlertEvaluator flags active budgets at or over their spend thresholds.
// Purely derived; budgets under threshold are omitted from the output.
type AlertEvaluator struct {
	store LedgerStore
	agg   *Aggregator
}

func NewAlertEvaluator(store LedgerStore) *AlertEvaluator {
	return &AlertEvaluator{store: store, agg: NewAggregator(store)}
}

func (e *AlertEvaluator) BudgetAlerts(ctx context.Context, userID int64) ([]models.BudgetAlert, error) {
	budgets, err := e.store.ListActiveBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	var alerts []models.BudgetAlert
	for i := range budgets {
		spending, err := e.agg.BudgetSpending(ctx, &budgets[i])
		if err != nil {
			return nil, err
		}
		if spending.PercentageUsed < alertWarningThreshold {
			continue
		}
		alertType := "warning"
		if spending.PercentageUsed >= alertCriticalThreshold {
			alertType = "critical"
		}
		alerts = append(alerts, models.BudgetAlert{
			BudgetID:     budgets[i].ID,
			BudgetName:   budgets[i].Name,
			Spent:        spending.Spent,
			BudgetAmount: budgets[i].Amount,
			Percentage:   spending.PercentageUsed,
			AlertType:    alertType,
		})
	}
	return alerts, nil
}
