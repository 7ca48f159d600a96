package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategoryRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			Name       string          `json:"name"`
			Conditions json.RawMessage `json:"conditions"`
			CategoryID int64           `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category rule request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if _, err := db.GetCategoryByID(r.Context(), pool, req.CategoryID); err != nil {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
		rule := &models.CategoryRule{
			UserID:     userID,
			Name:       req.Name,
			Conditions: req.Conditions,
			CategoryID: req.CategoryID,
		}
		created, err := db.CreateCategoryRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to create category rule for user %d: %v", userID, err)
			http.Error(w, "failed to create category rule", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created category rule id %d for user %d, name %s", created.ID, userID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetCategoryRuleByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleID, err := parseIDParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		rule, err := db.GetCategoryRuleByID(r.Context(), pool, userID, ruleID)
		if err != nil {
			log.Printf("ERROR: Category rule id %d not found for user %d: %v", ruleID, userID, err)
			coreError(w, err, "failed to get category rule")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rule)
	}
}

func GetAllCategoryRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		rules, err := db.GetAllCategoryRules(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get category rules for user %d: %v", userID, err)
			http.Error(w, "failed to get category rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rules)
	}
}

func UpdateCategoryRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleID, err := parseIDParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		var req struct {
			Name       string          `json:"name"`
			Conditions json.RawMessage `json:"conditions"`
			CategoryID int64           `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category rule request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		rule := &models.CategoryRule{
			ID:         ruleID,
			UserID:     userID,
			Name:       req.Name,
			Conditions: req.Conditions,
			CategoryID: req.CategoryID,
		}
		updated, err := db.UpdateCategoryRule(r.Context(), pool, rule)
		if err != nil {
			log.Printf("ERROR: Failed to update category rule id %d for user %d: %v", ruleID, userID, err)
			coreError(w, err, "failed to update category rule")
			return
		}
		log.Printf("INFO: Updated category rule id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteCategoryRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleID, err := parseIDParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteCategoryRule(r.Context(), pool, userID, ruleID); err != nil {
			log.Printf("ERROR: Failed to delete category rule id %d for user %d: %v", ruleID, userID, err)
			coreError(w, err, "failed to delete category rule")
			return
		}
		log.Printf("INFO: Deleted category rule id %d for user %d", ruleID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category rule deleted"})
	}
}

// TriggerCategoryRules applies the caller's rules to their existing
// transactions. Only the weak category reference changes; balances do not.
func TriggerCategoryRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		if err := db.ApplyCategoryRulesToUser(r.Context(), pool, userID); err != nil {
			log.Printf("ERROR: Failed to apply category rules for user %d: %v", userID, err)
			http.Error(w, "failed to apply category rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category rules applied"})
	}
}
