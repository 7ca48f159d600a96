package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountOther      AccountType = "other"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard, AccountInvestment, AccountLoan, AccountOther:
		return true
	}
	return false
}

type Account struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

type CreateAccountRequest struct {
	Name        string           `json:"name"`
	AccountType AccountType      `json:"account_type"`
	Balance     *decimal.Decimal `json:"balance"`
	Currency    string           `json:"currency"`
	Description *string          `json:"description"`
}

// UpdateAccountRequest carries a partial update; only non-nil fields are applied.
// Balance here is a direct out-of-band correction, not a transaction.
type UpdateAccountRequest struct {
	Name        *string          `json:"name"`
	AccountType *AccountType     `json:"account_type"`
	Balance     *decimal.Decimal `json:"balance"`
	Currency    *string          `json:"currency"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}
