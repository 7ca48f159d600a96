package core

import (
	"fmt"
	"time"

	"fintrack-server/src/models"
)

// ApplyGoalUpdate merges the non-nil fields of req into goal and re-evaluates
// the completion rule: a goal whose current amount reaches or exceeds its
// target flips to completed as a side effect of the update.
func ApplyGoalUpdate(goal *models.Goal, req *models.UpdateGoalRequest) error {
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.GoalType != nil {
		if !req.GoalType.Valid() {
			return fmt.Errorf("%w: unknown goal type %q", ErrValidationFailed, *req.GoalType)
		}
		goal.GoalType = *req.GoalType
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.IsNegative() {
			return fmt.Errorf("%w: target amount must not be negative", ErrValidationFailed)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return fmt.Errorf("%w: current amount must not be negative", ErrValidationFailed)
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return fmt.Errorf("%w: unknown goal status %q", ErrValidationFailed, *req.Status)
		}
		goal.Status = *req.Status
	}

	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = models.GoalCompleted
	}
	return nil
}

// GoalProgress is a pure function of the goal's stored fields; it has no
// persistence side effects.
func GoalProgress(goal *models.Goal) *models.GoalWithProgress {
	pct := 0.0
	if goal.TargetAmount.IsPositive() {
		pct, _ = goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred).Float64()
	}

	var daysRemaining *int
	if goal.TargetDate != nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		d := int(goal.TargetDate.Sub(today).Hours() / 24)
		daysRemaining = &d
	}

	return &models.GoalWithProgress{
		Goal:               *goal,
		RemainingAmount:    goal.TargetAmount.Sub(goal.CurrentAmount),
		ProgressPercentage: pct,
		DaysRemaining:      daysRemaining,
	}
}
