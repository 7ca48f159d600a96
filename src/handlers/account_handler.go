package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func CreateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if !req.AccountType.Valid() {
			log.Printf("ERROR: Invalid account type %q for user %d", req.AccountType, userID)
			http.Error(w, "invalid account type", http.StatusBadRequest)
			return
		}
		if req.Currency == "" {
			req.Currency = "USD"
		}
		if !util.ValidateCurrency(req.Currency) {
			http.Error(w, "invalid currency code", http.StatusBadRequest)
			return
		}

		balance := decimal.Zero
		if req.Balance != nil {
			balance = *req.Balance
		}

		account := &models.Account{
			UserID:      userID,
			Name:        req.Name,
			AccountType: req.AccountType,
			Balance:     balance,
			Currency:    req.Currency,
			Description: req.Description,
		}
		created, err := db.CreateAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to create account for user %d: %v", userID, err)
			http.Error(w, "failed to create account", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created account id %d for user %d", created.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAccountByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		account, err := db.GetAccountByID(r.Context(), pool, userID, accountID)
		if err != nil {
			log.Printf("ERROR: Account id %d not found for user %d: %v", accountID, userID, err)
			coreError(w, err, "failed to get account")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(account)
	}
}

func GetAllAccountsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accounts, err := db.GetAllAccountsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get accounts for user %d: %v", userID, err)
			http.Error(w, "failed to get accounts", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

func UpdateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		var req models.UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update account request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		account, err := db.GetAccountByID(r.Context(), pool, userID, accountID)
		if err != nil {
			coreError(w, err, "failed to get account")
			return
		}

		// Only supplied fields are applied. Balance here is an out-of-band
		// correction: it bypasses the transaction ledger on purpose.
		if req.Name != nil {
			account.Name = *req.Name
		}
		if req.AccountType != nil {
			if !req.AccountType.Valid() {
				http.Error(w, "invalid account type", http.StatusBadRequest)
				return
			}
			account.AccountType = *req.AccountType
		}
		if req.Balance != nil {
			account.Balance = *req.Balance
		}
		if req.Currency != nil {
			if !util.ValidateCurrency(*req.Currency) {
				http.Error(w, "invalid currency code", http.StatusBadRequest)
				return
			}
			account.Currency = *req.Currency
		}
		if req.Description != nil {
			account.Description = req.Description
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}

		updated, err := db.UpdateAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to update account id %d for user %d: %v", accountID, userID, err)
			coreError(w, err, "failed to update account")
			return
		}
		log.Printf("INFO: Updated account id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := parseIDParam(r, "account_id")
		if err != nil {
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteAccount(r.Context(), pool, userID, accountID); err != nil {
			log.Printf("ERROR: Failed to delete account id %d for user %d: %v", accountID, userID, err)
			coreError(w, err, "failed to delete account")
			return
		}
		log.Printf("INFO: Deleted account id %d and its transactions for user %d", accountID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "account deleted"})
	}
}
