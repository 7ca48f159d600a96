package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateTransactionRequest is a partial update; only non-nil fields are applied.
type UpdateTransactionRequest struct {
	AccountID       *int64           `json:"account_id"`
	CategoryID      *int64           `json:"category_id"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *TransactionType `json:"transaction_type"`
	Description     *string          `json:"description"`
	Date            *time.Time       `json:"date"`
	Notes           *string          `json:"notes"`
}
