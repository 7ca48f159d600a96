package core

import (
	"context"
	"fmt"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

// BalanceMaintainer keeps Account.Balance consistent with the transaction
// history by posting incremental deltas — the balance is never recomputed from
// scratch.
type BalanceMaintainer struct {
	store LedgerStore
}

func NewBalanceMaintainer(store LedgerStore) *BalanceMaintainer {
	return &BalanceMaintainer{store: store}
}

// Delta returns the signed amount a transaction contributes to its account's
// balance. Transfers do not move money yet and contribute zero.
// TODO: give transfers a destination account and post both legs.
func Delta(txnType models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch txnType {
	case models.TransactionIncome:
		return amount
	case models.TransactionExpense:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

func validateTransaction(amount decimal.Decimal, txnType models.TransactionType) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrValidationFailed)
	}
	if !txnType.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidationFailed, txnType)
	}
	return nil
}

// CreateTransaction verifies the referenced account belongs to userID, then
// persists the transaction row together with its balance delta in one durable
// unit.
func (m *BalanceMaintainer) CreateTransaction(ctx context.Context, userID int64, txn *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(txn.Amount, txn.TransactionType); err != nil {
		return nil, err
	}
	if _, err := m.store.GetAccount(ctx, txn.AccountID, userID); err != nil {
		return nil, err
	}
	txn.UserID = userID
	change := BalanceChange{
		AccountID: txn.AccountID,
		Delta:     Delta(txn.TransactionType, txn.Amount),
	}
	return m.store.InsertTransaction(ctx, txn, change)
}

// UpdateTransaction applies a partial update while keeping the balance
// invariant: the old (account, amount, type) triple is captured before any
// field is merged, its effect is reversed against the old account, and the new
// effect is applied to whatever account the transaction references afterwards.
func (m *BalanceMaintainer) UpdateTransaction(ctx context.Context, userID, transactionID int64, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := m.store.GetTransaction(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	oldAccountID := txn.AccountID
	oldAmount := txn.Amount
	oldType := txn.TransactionType

	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		txn.CategoryID = req.CategoryID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.TransactionType != nil {
		txn.TransactionType = *req.TransactionType
	}
	if req.Description != nil {
		txn.Description = req.Description
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Notes != nil {
		txn.Notes = req.Notes
	}

	if err := validateTransaction(txn.Amount, txn.TransactionType); err != nil {
		return nil, err
	}

	if txn.AccountID != oldAccountID {
		if _, err := m.store.GetAccount(ctx, txn.AccountID, userID); err != nil {
			return nil, fmt.Errorf("%w: account %d", ErrInvalidReference, txn.AccountID)
		}
	}

	reversal := Delta(oldType, oldAmount).Neg()
	forward := Delta(txn.TransactionType, txn.Amount)

	var changes []BalanceChange
	if txn.AccountID == oldAccountID {
		changes = []BalanceChange{{AccountID: oldAccountID, Delta: reversal.Add(forward)}}
	} else {
		changes = []BalanceChange{
			{AccountID: oldAccountID, Delta: reversal},
			{AccountID: txn.AccountID, Delta: forward},
		}
	}

	return m.store.SaveTransaction(ctx, txn, changes)
}

// DeleteTransaction reverses the transaction's effect on its account and
// removes the row in one durable unit.
func (m *BalanceMaintainer) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	txn, err := m.store.GetTransaction(ctx, transactionID, userID)
	if err != nil {
		return err
	}
	change := BalanceChange{
		AccountID: txn.AccountID,
		Delta:     Delta(txn.TransactionType, txn.Amount).Neg(),
	}
	return m.store.RemoveTransaction(ctx, transactionID, userID, change)
}
