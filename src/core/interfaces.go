package core

import (
	"context"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction queries. Nil fields are ignored.
// Date bounds are inclusive on both ends.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       *models.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// BalanceChange is a signed delta to post against an account's balance.
type BalanceChange struct {
	AccountID int64
	Delta     decimal.Decimal
}

// CategoryTotal is one bucket of a per-category sum. A nil CategoryID is the
// uncategorized bucket.
type CategoryTotal struct {
	CategoryID *int64
	Total      decimal.Decimal
}

// LedgerStore is the persistence contract the core runs against. Every method
// is scoped to a single owner; entities belonging to other users behave as if
// they do not exist (ErrNotFound).
//
// The write methods that carry BalanceChange values must commit the row write
// and the balance deltas in one durable unit, and must apply each delta as an
// atomic relative update of the balance column so that concurrent writers on
// the same account cannot lose updates.
type LedgerStore interface {
	GetAccount(ctx context.Context, accountID, userID int64) (*models.Account, error)
	GetTransaction(ctx context.Context, transactionID, userID int64) (*models.Transaction, error)

	InsertTransaction(ctx context.Context, txn *models.Transaction, change BalanceChange) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, txn *models.Transaction, changes []BalanceChange) (*models.Transaction, error)
	RemoveTransaction(ctx context.Context, transactionID, userID int64, change BalanceChange) error

	SumTransactions(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error)
	AverageTransactionAmount(ctx context.Context, userID int64, filter TransactionFilter) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter, skip, limit int) ([]models.Transaction, error)
	SumExpensesByCategory(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]CategoryTotal, error)

	SumActiveAccountBalances(ctx context.Context, userID int64) (decimal.Decimal, error)
	CountActiveBudgets(ctx context.Context, userID int64) (int64, error)
	CountActiveGoals(ctx context.Context, userID int64) (int64, error)
	ListActiveBudgets(ctx context.Context, userID int64) ([]models.Budget, error)
}
