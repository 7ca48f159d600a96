package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack-server/src/core"
	db "fintrack-server/src/db/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

func dateRangeFromQuery(r *http.Request) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		startDate = &t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		endDate = &t
	}
	return startDate, endDate, nil
}

func GetDashboardSummary(pool *pgxpool.Pool) http.HandlerFunc {
	aggregator := core.NewAggregator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		summary, err := aggregator.DashboardSummary(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to build dashboard summary for user %d: %v", userID, err)
			http.Error(w, "failed to build dashboard summary", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func GetExpensesByCategory(pool *pgxpool.Pool) http.HandlerFunc {
	aggregator := core.NewAggregator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		startDate, endDate, err := dateRangeFromQuery(r)
		if err != nil {
			http.Error(w, "invalid date range", http.StatusBadRequest)
			return
		}
		breakdown, err := aggregator.ExpensesByCategory(r.Context(), userID, startDate, endDate)
		if err != nil {
			log.Printf("ERROR: Failed to build category breakdown for user %d: %v", userID, err)
			http.Error(w, "failed to build category breakdown", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(breakdown)
	}
}

func GetIncomeVsExpenses(pool *pgxpool.Pool) http.HandlerFunc {
	aggregator := core.NewAggregator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		startDate, endDate, err := dateRangeFromQuery(r)
		if err != nil {
			http.Error(w, "invalid date range", http.StatusBadRequest)
			return
		}
		report, err := aggregator.IncomeVsExpenses(r.Context(), userID, startDate, endDate)
		if err != nil {
			log.Printf("ERROR: Failed to build income vs expenses report for user %d: %v", userID, err)
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

func GetExpenseForecast(pool *pgxpool.Pool) http.HandlerFunc {
	aggregator := core.NewAggregator(db.NewStore(pool))
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		months := 0
		if v := r.URL.Query().Get("months"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid months", http.StatusBadRequest)
				return
			}
			months = parsed
		}
		forecast, err := aggregator.ForecastExpenses(r.Context(), userID, months)
		if err != nil {
			log.Printf("ERROR: Failed to build expense forecast for user %d: %v", userID, err)
			http.Error(w, "failed to build forecast", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(forecast)
	}
}
