package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack-server/src/core"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	maintainer := core.NewBalanceMaintainer(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Date.IsZero() {
			req.Date = time.Now()
		}

		txn := &models.Transaction{
			AccountID:       req.AccountID,
			CategoryID:      req.CategoryID,
			Amount:          req.Amount,
			TransactionType: req.TransactionType,
			Description:     req.Description,
			Date:            req.Date,
			Notes:           req.Notes,
		}
		created, err := maintainer.CreateTransaction(r.Context(), userID, txn)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			coreError(w, err, "failed to create transaction")
			return
		}
		log.Printf("INFO: Created transaction id %d for user %d, account %d", created.ID, userID, created.AccountID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		txn, err := store.GetTransaction(r.Context(), transactionID, userID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			coreError(w, err, "failed to get transaction")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(txn)
	}
}

// GetAllTransactionsForUser lists the caller's transactions, newest first,
// with optional account_id/category_id/start_date/end_date filters and
// skip/limit paging.
func GetAllTransactionsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		filter, err := transactionFilterFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		transactions, err := store.ListTransactions(r.Context(), userID, filter, skip, limit)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	maintainer := core.NewBalanceMaintainer(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		updated, err := maintainer.UpdateTransaction(r.Context(), userID, transactionID, &req)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", transactionID, userID, err)
			coreError(w, err, "failed to update transaction")
			return
		}
		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	maintainer := core.NewBalanceMaintainer(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := parseIDParam(r, "transaction_id")
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		if err := maintainer.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", transactionID, userID, err)
			coreError(w, err, "failed to delete transaction")
			return
		}
		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}

func transactionFilterFromQuery(r *http.Request) (core.TransactionFilter, error) {
	var filter core.TransactionFilter
	q := r.URL.Query()

	if v := q.Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.AccountID = &id
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &t
	}
	return filter, nil
}
