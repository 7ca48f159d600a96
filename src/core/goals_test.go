package core

import (
	"testing"
	"time"

	"fintrack-server/src/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyGoalUpdate_MergesFields(t *testing.T) {
	goal := &models.Goal{
		Name:          "Vacation",
		GoalType:      models.GoalSavings,
		TargetAmount:  dec("2000.00"),
		CurrentAmount: dec("100.00"),
		Status:        models.GoalActive,
	}

	name := "Road trip"
	err := ApplyGoalUpdate(goal, &models.UpdateGoalRequest{
		Name:          &name,
		CurrentAmount: decPtr("500.00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Road trip", goal.Name)
	assert.True(t, goal.CurrentAmount.Equal(dec("500.00")))
	assert.Equal(t, models.GoalActive, goal.Status)
}

func TestApplyGoalUpdate_AutoComplete(t *testing.T) {
	goal := &models.Goal{
		Name:          "Emergency fund",
		GoalType:      models.GoalEmergencyFund,
		TargetAmount:  dec("1000.00"),
		CurrentAmount: dec("900.00"),
		Status:        models.GoalActive,
	}

	err := ApplyGoalUpdate(goal, &models.UpdateGoalRequest{
		CurrentAmount: decPtr("1000.00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, goal.Status)
}

func TestApplyGoalUpdate_AutoCompleteOverridesStatus(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  dec("1000.00"),
		CurrentAmount: dec("1200.00"),
		Status:        models.GoalCompleted,
	}

	paused := models.GoalPaused
	err := ApplyGoalUpdate(goal, &models.UpdateGoalRequest{Status: &paused})
	assert.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, goal.Status)
}

func TestApplyGoalUpdate_Validation(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  dec("1000.00"),
		CurrentAmount: dec("100.00"),
		Status:        models.GoalActive,
	}

	err := ApplyGoalUpdate(goal, &models.UpdateGoalRequest{
		CurrentAmount: decPtr("-5.00"),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	badType := models.GoalType("lottery")
	err = ApplyGoalUpdate(goal, &models.UpdateGoalRequest{GoalType: &badType})
	assert.ErrorIs(t, err, ErrValidationFailed)

	badStatus := models.GoalStatus("archived")
	err = ApplyGoalUpdate(goal, &models.UpdateGoalRequest{Status: &badStatus})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGoalProgress(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  dec("2000.00"),
		CurrentAmount: dec("500.00"),
		Status:        models.GoalActive,
	}

	p := GoalProgress(goal)
	assert.True(t, p.RemainingAmount.Equal(dec("1500.00")))
	assert.InDelta(t, 25.0, p.ProgressPercentage, 0.001)
	assert.Nil(t, p.DaysRemaining)
}

func TestGoalProgress_ZeroTarget(t *testing.T) {
	goal := &models.Goal{
		TargetAmount:  dec("0.00"),
		CurrentAmount: dec("0.00"),
	}

	p := GoalProgress(goal)
	assert.Equal(t, 0.0, p.ProgressPercentage)
}

func TestGoalProgress_DaysRemaining(t *testing.T) {
	target := time.Now().AddDate(0, 0, 10)
	goal := &models.Goal{
		TargetAmount:  dec("100.00"),
		CurrentAmount: dec("10.00"),
		TargetDate:    &target,
	}

	p := GoalProgress(goal)
	assert.NotNil(t, p.DaysRemaining)
	assert.InDelta(t, 10, *p.DaysRemaining, 1)
}
