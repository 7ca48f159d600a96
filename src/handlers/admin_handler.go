package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAllUsers(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := db.GetAllUsers(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get all users: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(users)
	}
}

func LockUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDParam(r, "user_id")
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := db.SetUserLocked(r.Context(), pool, userID, true); err != nil {
			log.Printf("ERROR: Failed to lock user %d: %v", userID, err)
			coreError(w, err, "failed to lock user")
			return
		}

		log.Printf("INFO: User locked - User: %d", userID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "user locked",
		})
	}
}

func UnlockUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDParam(r, "user_id")
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := db.SetUserLocked(r.Context(), pool, userID, false); err != nil {
			log.Printf("ERROR: Failed to unlock user %d: %v", userID, err)
			coreError(w, err, "failed to unlock user")
			return
		}

		log.Printf("INFO: User unlocked - User: %d", userID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "user unlocked",
		})
	}
}

// ClearCache drops a named cache family. Only the shared category list is
// cached today.
func ClearCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheName := chi.URLParam(r, "cache_name")

		switch cacheName {
		case "categories":
			cache.ClearAllCategoryCaches()
		default:
			http.Error(w, "unknown cache name", http.StatusBadRequest)
			return
		}

		log.Printf("INFO: Cache cleared - Cache: %s", cacheName)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "cache cleared",
		})
	}
}
