package core

import (
	"context"
	"testing"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func typePtr(t models.TransactionType) *models.TransactionType {
	return &t
}

func TestDelta(t *testing.T) {
	amount := dec("25.50")

	assert.True(t, Delta(models.TransactionIncome, amount).Equal(dec("25.50")))
	assert.True(t, Delta(models.TransactionExpense, amount).Equal(dec("-25.50")))
	assert.True(t, Delta(models.TransactionTransfer, amount).Equal(decimal.Zero))
}

func TestCreateTransaction_AppliesDelta(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	_, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("70.00")))

	_, err = m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("45.00"),
		TransactionType: models.TransactionIncome,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("115.00")))
}

func TestCreateTransaction_SetsOwner(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "0.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("5.00"),
		TransactionType: models.TransactionIncome,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), created.UserID)
}

func TestCreateTransaction_AccountNotOwned(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 99, "100.00")
	m := NewBalanceMaintainer(ledger)

	_, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("100.00")))
}

func TestCreateTransaction_Validation(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "0.00")
	m := NewBalanceMaintainer(ledger)

	_, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("-5.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("5.00"),
		TransactionType: models.TransactionType("refund"),
		Date:            time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

// Transfers have no destination account yet, so until two-legged posting
// lands they must not move money at all.
func TestCreateTransaction_TransferIsNeutral(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "200.00")
	m := NewBalanceMaintainer(ledger)

	_, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("50.00"),
		TransactionType: models.TransactionTransfer,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("200.00")))
}

func TestUpdateTransaction_AmountChange(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("70.00")))

	_, err = m.UpdateTransaction(context.Background(), 10, created.ID, &models.UpdateTransactionRequest{
		Amount: decPtr("50.00"),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("50.00")))
}

func TestUpdateTransaction_TypeChange(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)

	// -30 reversed, +30 applied: net swing of 60
	_, err = m.UpdateTransaction(context.Background(), 10, created.ID, &models.UpdateTransactionRequest{
		TransactionType: typePtr(models.TransactionIncome),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("130.00")))
}

func TestUpdateTransaction_AccountMove(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	ledger.addAccount(2, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("70.00")))

	newAccount := int64(2)
	_, err = m.UpdateTransaction(context.Background(), 10, created.ID, &models.UpdateTransactionRequest{
		AccountID: &newAccount,
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("100.00")))
	assert.True(t, ledger.accounts[2].Balance.Equal(dec("70.00")))
}

func TestUpdateTransaction_AccountMoveToForeignAccount(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	ledger.addAccount(2, 99, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)

	newAccount := int64(2)
	_, err = m.UpdateTransaction(context.Background(), 10, created.ID, &models.UpdateTransactionRequest{
		AccountID: &newAccount,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("70.00")))
	assert.True(t, ledger.accounts[2].Balance.Equal(dec("100.00")))
}

func TestUpdateTransaction_NotOwned(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)

	_, err = m.UpdateTransaction(context.Background(), 99, created.ID, &models.UpdateTransactionRequest{
		Amount: decPtr("1.00"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_ReversesEffect(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "100.00")
	m := NewBalanceMaintainer(ledger)

	created, err := m.CreateTransaction(context.Background(), 10, &models.Transaction{
		AccountID:       1,
		Amount:          dec("30.00"),
		TransactionType: models.TransactionExpense,
		Date:            time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("70.00")))

	err = m.DeleteTransaction(context.Background(), 10, created.ID)
	assert.NoError(t, err)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("100.00")))
	assert.Empty(t, ledger.transactions)
}

// The balance must always equal the opening balance plus the signed sum of the
// surviving transactions, no matter what sequence of creates, updates, and
// deletes produced them.
func TestBalance_MatchesReplayOfSurvivingTransactions(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 10, "500.00")
	m := NewBalanceMaintainer(ledger)
	ctx := context.Background()

	var ids []int64
	steps := []struct {
		amount string
		typ    models.TransactionType
	}{
		{"120.00", models.TransactionIncome},
		{"45.50", models.TransactionExpense},
		{"300.00", models.TransactionIncome},
		{"12.25", models.TransactionExpense},
		{"80.00", models.TransactionTransfer},
	}
	for _, s := range steps {
		created, err := m.CreateTransaction(ctx, 10, &models.Transaction{
			AccountID:       1,
			Amount:          dec(s.amount),
			TransactionType: s.typ,
			Date:            time.Now(),
		})
		assert.NoError(t, err)
		ids = append(ids, created.ID)
	}

	_, err := m.UpdateTransaction(ctx, 10, ids[1], &models.UpdateTransactionRequest{
		Amount: decPtr("60.00"),
	})
	assert.NoError(t, err)
	assert.NoError(t, m.DeleteTransaction(ctx, 10, ids[3]))

	expected := dec("500.00")
	for _, txn := range ledger.transactions {
		expected = expected.Add(Delta(txn.TransactionType, txn.Amount))
	}
	assert.True(t, ledger.accounts[1].Balance.Equal(expected),
		"balance %s != replayed %s", ledger.accounts[1].Balance, expected)
	assert.True(t, ledger.accounts[1].Balance.Equal(dec("860.00")))
}
