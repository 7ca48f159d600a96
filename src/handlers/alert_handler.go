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

// GetBudgetAlerts returns only budgets at or over threshold; budgets under
// threshold are omitted rather than reported with a neutral status.
func GetBudgetAlerts(pool *pgxpool.Pool) http.HandlerFunc {
	evaluator := core.NewAlertEvaluator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		alerts, err := evaluator.BudgetAlerts(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to evaluate budget alerts for user %d: %v", userID, err)
			http.Error(w, "failed to evaluate alerts", http.StatusInternalServerError)
			return
		}
		if alerts == nil {
			alerts = []models.BudgetAlert{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alerts)
	}
}
