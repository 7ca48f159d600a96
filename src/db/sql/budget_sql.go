package db

import (
	"context"
	"errors"
	"fmt"

	"fintrack-server/src/core"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, user_id, category_id, name, amount, period, start_date, end_date, is_active, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, name, amount, period, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING ` + budgetColumns
	return scanBudget(pool.QueryRow(ctx, query,
		budget.UserID, budget.CategoryID, budget.Name, budget.Amount, budget.Period, budget.StartDate, budget.EndDate))
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`
	budget, err := scanBudget(pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget %d", core.ErrNotFound, budgetID)
		}
		return nil, err
	}
	return budget, nil
}

// GetAllBudgetsForUser returns the user's active budgets, newest first.
func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *budget)
	}
	return budgets, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, name = $2, amount = $3, period = $4, start_date = $5, end_date = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + budgetColumns
	updated, err := scanBudget(pool.QueryRow(ctx, query,
		budget.CategoryID, budget.Name, budget.Amount, budget.Period, budget.StartDate, budget.EndDate, budget.IsActive,
		budget.ID, budget.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget %d", core.ErrNotFound, budget.ID)
		}
		return nil, err
	}
	return updated, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %d", core.ErrNotFound, budgetID)
	}
	return nil
}
