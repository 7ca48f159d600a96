package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoalType string

const (
	GoalSavings       GoalType = "savings"
	GoalDebtPayoff    GoalType = "debt_payoff"
	GoalPurchase      GoalType = "purchase"
	GoalEmergencyFund GoalType = "emergency_fund"
	GoalOther         GoalType = "other"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalSavings, GoalDebtPayoff, GoalPurchase, GoalEmergencyFund, GoalOther:
		return true
	}
	return false
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalCancelled:
		return true
	}
	return false
}

type Goal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	GoalType      GoalType        `json:"goal_type"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date"`
	Status        GoalStatus      `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at"`
}

type CreateGoalRequest struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	GoalType      GoalType         `json:"goal_type"`
	TargetAmount  decimal.Decimal  `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time       `json:"target_date"`
}

type UpdateGoalRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	GoalType      *GoalType        `json:"goal_type"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time       `json:"target_date"`
	Status        *GoalStatus      `json:"status"`
}
