package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fintrack-server/src/core"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.CreateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if !req.GoalType.Valid() {
			http.Error(w, "invalid goal type", http.StatusBadRequest)
			return
		}
		if req.TargetAmount.IsNegative() {
			http.Error(w, "target amount must not be negative", http.StatusBadRequest)
			return
		}

		current := decimal.Zero
		if req.CurrentAmount != nil {
			if req.CurrentAmount.IsNegative() {
				http.Error(w, "current amount must not be negative", http.StatusBadRequest)
				return
			}
			current = *req.CurrentAmount
		}

		goal := &models.Goal{
			UserID:        userID,
			Name:          req.Name,
			Description:   req.Description,
			GoalType:      req.GoalType,
			TargetAmount:  req.TargetAmount,
			CurrentAmount: current,
			TargetDate:    req.TargetDate,
			Status:        models.GoalActive,
		}
		created, err := db.CreateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to create goal for user %d: %v", userID, err)
			http.Error(w, "failed to create goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created goal id %d for user %d", created.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetGoalByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := parseIDParam(r, "goal_id")
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		goal, err := db.GetGoalByID(r.Context(), pool, userID, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", goalID, userID, err)
			coreError(w, err, "failed to get goal")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goal)
	}
}

// GetGoalProgress derives remaining amount, progress percentage and days
// remaining from the stored goal; it writes nothing back.
func GetGoalProgress(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := parseIDParam(r, "goal_id")
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		goal, err := db.GetGoalByID(r.Context(), pool, userID, goalID)
		if err != nil {
			coreError(w, err, "failed to get goal")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.GoalProgress(goal))
	}
}

func GetAllGoalsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goals, err := db.GetAllGoalsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get goals for user %d: %v", userID, err)
			http.Error(w, "failed to get goals", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func UpdateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := parseIDParam(r, "goal_id")
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		var req models.UpdateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		goal, err := db.GetGoalByID(r.Context(), pool, userID, goalID)
		if err != nil {
			coreError(w, err, "failed to get goal")
			return
		}
		if err := core.ApplyGoalUpdate(goal, &req); err != nil {
			coreError(w, err, "failed to update goal")
			return
		}

		updated, err := db.UpdateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to update goal id %d for user %d: %v", goalID, userID, err)
			coreError(w, err, "failed to update goal")
			return
		}
		log.Printf("INFO: Updated goal id %d for user %d, status %s", updated.ID, userID, updated.Status)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := parseIDParam(r, "goal_id")
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteGoal(r.Context(), pool, userID, goalID); err != nil {
			log.Printf("ERROR: Failed to delete goal id %d for user %d: %v", goalID, userID, err)
			coreError(w, err, "failed to delete goal")
			return
		}
		log.Printf("INFO: Deleted goal id %d for user %d", goalID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal deleted"})
	}
}
