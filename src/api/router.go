package api

import (
	"net/http"

	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, isDemo bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.DemoModeMiddleware(isDemo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/register", handlers.Register(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(pool)).Group(func(r chi.Router) {
			// User
			r.Get("/user/{user_id}", handlers.GetUser(pool))
			r.Put("/user", handlers.UpdateUser(pool))
			r.Post("/user/change-password", handlers.ChangePassword(pool))
			r.Delete("/user", handlers.DeleteUser(pool))

			// Accounts
			r.Post("/accounts", handlers.CreateAccount(pool))
			r.Get("/accounts", handlers.GetAllAccountsForUser(pool))
			r.Get("/accounts/{account_id}", handlers.GetAccountByID(pool))
			r.Put("/accounts/{account_id}", handlers.UpdateAccount(pool))
			r.Delete("/accounts/{account_id}", handlers.DeleteAccount(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetAllTransactionsForUser(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Categories
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories", handlers.GetAllCategories(pool))
			r.Get("/categories/{category_id}", handlers.GetCategoryByID(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(pool))
			r.Get("/budgets", handlers.GetAllBudgetsForUser(pool))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool))
			r.Get("/budgets/{budget_id}/spending", handlers.GetBudgetSpending(pool))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

			// Goals
			r.Post("/goals", handlers.CreateGoal(pool))
			r.Get("/goals", handlers.GetAllGoalsForUser(pool))
			r.Get("/goals/{goal_id}", handlers.GetGoalByID(pool))
			r.Get("/goals/{goal_id}/progress", handlers.GetGoalProgress(pool))
			r.Put("/goals/{goal_id}", handlers.UpdateGoal(pool))
			r.Delete("/goals/{goal_id}", handlers.DeleteGoal(pool))

			// Category Rules
			r.Post("/category-rules", handlers.CreateCategoryRule(pool))
			r.Post("/category-rules/trigger", handlers.TriggerCategoryRules(pool))
			r.Get("/category-rules", handlers.GetAllCategoryRules(pool))
			r.Get("/category-rules/{rule_id}", handlers.GetCategoryRuleByID(pool))
			r.Put("/category-rules/{rule_id}", handlers.UpdateCategoryRule(pool))
			r.Delete("/category-rules/{rule_id}", handlers.DeleteCategoryRule(pool))

			// Reports
			r.Get("/reports/dashboard", handlers.GetDashboardSummary(pool))
			r.Get("/reports/expenses-by-category", handlers.GetExpensesByCategory(pool))
			r.Get("/reports/income-vs-expenses", handlers.GetIncomeVsExpenses(pool))
			r.Get("/reports/forecast", handlers.GetExpenseForecast(pool))

			// Alerts
			r.Get("/alerts/budgets", handlers.GetBudgetAlerts(pool))
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware(pool), middleware.SuperAdminMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/admin/users", handlers.GetAllUsers(pool))
			r.Post("/admin/user/lock/{user_id}", handlers.LockUser(pool))
			r.Post("/admin/user/unlock/{user_id}", handlers.UnlockUser(pool))

			// Cache
			r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache())
		})
	})

	return r
}
