package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Categories are shared across users; there is no owner scoping here.

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			Name        string  `json:"name"`
			Description *string `json:"description"`
			Color       *string `json:"color"`
			Icon        *string `json:"icon"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		category := &models.Category{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Icon:        req.Icon,
		}
		created, err := db.CreateCategory(r.Context(), pool, category)
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created category id %d (%s) by user %d", created.ID, created.Name, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		category, err := db.GetCategoryByID(r.Context(), pool, categoryID)
		if err != nil {
			coreError(w, err, "failed to get category")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(category)
	}
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := db.GetAllCategories(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get categories: %v", err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		var req models.UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		category, err := db.GetCategoryByID(r.Context(), pool, categoryID)
		if err != nil {
			coreError(w, err, "failed to get category")
			return
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Description != nil {
			category.Description = req.Description
		}
		if req.Color != nil {
			category.Color = req.Color
		}
		if req.Icon != nil {
			category.Icon = req.Icon
		}

		updated, err := db.UpdateCategory(r.Context(), pool, category)
		if err != nil {
			log.Printf("ERROR: Failed to update category id %d: %v", categoryID, err)
			coreError(w, err, "failed to update category")
			return
		}
		log.Printf("INFO: Updated category id %d by user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, err := parseIDParam(r, "category_id")
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteCategory(r.Context(), pool, categoryID); err != nil {
			log.Printf("ERROR: Failed to delete category id %d: %v", categoryID, err)
			coreError(w, err, "failed to delete category")
			return
		}
		log.Printf("INFO: Deleted category id %d by user %d", categoryID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category deleted"})
	}
}
