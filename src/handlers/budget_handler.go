package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fintrack-server/src/core"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.CreateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if !req.Amount.IsPositive() {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		if req.Period == "" {
			req.Period = models.BudgetMonthly
		}
		if !req.Period.Valid() {
			http.Error(w, "invalid budget period", http.StatusBadRequest)
			return
		}
		if req.StartDate.IsZero() {
			http.Error(w, "start_date is required", http.StatusBadRequest)
			return
		}

		budget := &models.Budget{
			UserID:     userID,
			CategoryID: req.CategoryID,
			Name:       req.Name,
			Amount:     req.Amount,
			Period:     req.Period,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created budget id %d for user %d", created.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := parseIDParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Budget id %d not found for user %d: %v", budgetID, userID, err)
			coreError(w, err, "failed to get budget")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budget)
	}
}

// GetBudgetSpending returns the budget along with spent/remaining/
// percentage_used derived from the expense ledger.
func GetBudgetSpending(pool *pgxpool.Pool) http.HandlerFunc {
	aggregator := core.NewAggregator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := parseIDParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			coreError(w, err, "failed to get budget")
			return
		}
		spending, err := aggregator.BudgetSpending(r.Context(), budget)
		if err != nil {
			log.Printf("ERROR: Failed to compute spending for budget %d, user %d: %v", budgetID, userID, err)
			http.Error(w, "failed to compute budget spending", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(spending)
	}
}

func GetAllBudgetsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := parseIDParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		var req models.UpdateBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			coreError(w, err, "failed to get budget")
			return
		}
		if req.CategoryID != nil {
			budget.CategoryID = req.CategoryID
		}
		if req.Name != nil {
			budget.Name = *req.Name
		}
		if req.Amount != nil {
			if !req.Amount.IsPositive() {
				http.Error(w, "amount must be positive", http.StatusBadRequest)
				return
			}
			budget.Amount = *req.Amount
		}
		if req.Period != nil {
			if !req.Period.Valid() {
				http.Error(w, "invalid budget period", http.StatusBadRequest)
				return
			}
			budget.Period = *req.Period
		}
		if req.StartDate != nil {
			budget.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			budget.EndDate = req.EndDate
		}
		if req.IsActive != nil {
			budget.IsActive = *req.IsActive
		}

		updated, err := db.UpdateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to update budget id %d for user %d: %v", budgetID, userID, err)
			coreError(w, err, "failed to update budget")
			return
		}
		log.Printf("INFO: Updated budget id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetID, err := parseIDParam(r, "budget_id")
		if err != nil {
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			coreError(w, err, "failed to delete budget")
			return
		}
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}
