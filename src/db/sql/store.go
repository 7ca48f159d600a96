package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack-server/src/core"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, account_id, category_id, amount, transaction_type, description, date, notes, created_at, updated_at`

// Store implements core.LedgerStore on a pgx pool. Transaction writes and
// their balance deltas commit in a single database transaction; deltas are
// posted as relative updates of the balance column so concurrent writers on
// the same account serialize on the row instead of losing updates.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Amount, &t.TransactionType, &t.Description, &t.Date, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) GetAccount(ctx context.Context, accountID, userID int64) (*models.Account, error) {
	return GetAccountByID(ctx, s.pool, userID, accountID)
}

func (s *Store) GetTransaction(ctx context.Context, transactionID, userID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	txn, err := scanTransaction(s.pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", core.ErrNotFound, transactionID)
		}
		return nil, err
	}
	return txn, nil
}

func applyBalanceChange(ctx context.Context, tx pgx.Tx, userID int64, change core.BalanceChange) error {
	cmd, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		change.Delta, change.AccountID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", core.ErrNotFound, change.AccountID)
	}
	return nil
}

func (s *Store) InsertTransaction(ctx context.Context, txn *models.Transaction, change core.BalanceChange) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (user_id, account_id, category_id, amount, transaction_type, description, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + transactionColumns
	created, err := scanTransaction(tx.QueryRow(ctx, query,
		txn.UserID, txn.AccountID, txn.CategoryID, txn.Amount, txn.TransactionType, txn.Description, txn.Date, txn.Notes))
	if err != nil {
		return nil, err
	}
	if err := applyBalanceChange(ctx, tx, txn.UserID, change); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) SaveTransaction(ctx context.Context, txn *models.Transaction, changes []core.BalanceChange) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, amount = $3, transaction_type = $4, description = $5, date = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + transactionColumns
	updated, err := scanTransaction(tx.QueryRow(ctx, query,
		txn.AccountID, txn.CategoryID, txn.Amount, txn.TransactionType, txn.Description, txn.Date, txn.Notes,
		txn.ID, txn.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", core.ErrNotFound, txn.ID)
		}
		return nil, err
	}
	for _, change := range changes {
		if err := applyBalanceChange(ctx, tx, txn.UserID, change); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) RemoveTransaction(ctx context.Context, transactionID, userID int64, change core.BalanceChange) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", core.ErrNotFound, transactionID)
	}
	if err := applyBalanceChange(ctx, tx, userID, change); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func transactionWhere(userID int64, filter core.TransactionFilter) (string, []interface{}) {
	clauses := []string{"user_id = $1"}
	args := []interface{}{userID}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(cond, len(args)))
	}
	if filter.AccountID != nil {
		add("account_id = $%d", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.Type != nil {
		add("transaction_type = $%d", *filter.Type)
	}
	if filter.StartDate != nil {
		add("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("date <= $%d", *filter.EndDate)
	}
	return strings.Join(clauses, " AND "), args
}

func (s *Store) SumTransactions(ctx context.Context, userID int64, filter core.TransactionFilter) (decimal.Decimal, error) {
	where, args := transactionWhere(userID, filter)
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE `+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *Store) AverageTransactionAmount(ctx context.Context, userID int64, filter core.TransactionFilter) (decimal.Decimal, error) {
	where, args := transactionWhere(userID, filter)
	var avg decimal.Decimal
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(AVG(amount), 0) FROM transactions WHERE `+where, args...).Scan(&avg)
	if err != nil {
		return decimal.Zero, err
	}
	return avg, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int64, filter core.TransactionFilter, skip, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	where, args := transactionWhere(userID, filter)
	args = append(args, skip, limit)
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY date DESC OFFSET $%d LIMIT $%d`,
		transactionColumns, where, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

func (s *Store) SumExpensesByCategory(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]core.CategoryTotal, error) {
	expense := models.TransactionExpense
	where, args := transactionWhere(userID, core.TransactionFilter{
		Type:      &expense,
		StartDate: startDate,
		EndDate:   endDate,
	})
	query := `SELECT category_id, SUM(amount) FROM transactions WHERE ` + where + ` GROUP BY category_id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Store) SumActiveAccountBalances(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1 AND is_active = TRUE`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *Store) CountActiveBudgets(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM budgets WHERE user_id = $1 AND is_active = TRUE`, userID).Scan(&count)
	return count, err
}

func (s *Store) CountActiveGoals(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = $2`, userID, models.GoalActive).Scan(&count)
	return count, err
}

func (s *Store) ListActiveBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	return GetAllBudgetsForUser(ctx, s.pool, userID)
}
