package db

import (
	"context"
	"errors"
	"fmt"

	"fintrack-server/src/core"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, user_id, name, account_type, balance, currency, description, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.AccountType, &a.Balance, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, name, account_type, balance, currency, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + accountColumns
	return scanAccount(pool.QueryRow(ctx, query,
		account.UserID, account.Name, account.AccountType, account.Balance, account.Currency, account.Description))
}

func GetAccountByID(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	account, err := scanAccount(pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", core.ErrNotFound, accountID)
		}
		return nil, err
	}
	return account, nil
}

func GetAllAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func UpdateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, balance = $3, currency = $4, description = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING ` + accountColumns
	updated, err := scanAccount(pool.QueryRow(ctx, query,
		account.Name, account.AccountType, account.Balance, account.Currency, account.Description, account.IsActive,
		account.ID, account.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", core.ErrNotFound, account.ID)
		}
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes the account and all of its transactions in one
// database transaction. Balances of other accounts are untouched.
func DeleteAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1 AND user_id = $2`, accountID, userID); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", core.ErrNotFound, accountID)
	}
	return tx.Commit(ctx)
}
