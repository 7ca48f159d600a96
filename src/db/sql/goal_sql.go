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

const goalColumns = `id, user_id, name, description, goal_type, target_amount, current_amount, target_date, status, created_at, updated_at`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.GoalType, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, description, goal_type, target_amount, current_amount, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + goalColumns
	return scanGoal(pool.QueryRow(ctx, query,
		goal.UserID, goal.Name, goal.Description, goal.GoalType, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Status))
}

func GetGoalByID(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	goal, err := scanGoal(pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %d", core.ErrNotFound, goalID)
		}
		return nil, err
	}
	return goal, nil
}

func GetAllGoalsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET name = $1, description = $2, goal_type = $3, target_amount = $4, current_amount = $5, target_date = $6, status = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + goalColumns
	updated, err := scanGoal(pool.QueryRow(ctx, query,
		goal.Name, goal.Description, goal.GoalType, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Status,
		goal.ID, goal.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %d", core.ErrNotFound, goal.ID)
		}
		return nil, err
	}
	return updated, nil
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %d", core.ErrNotFound, goalID)
	}
	return nil
}
