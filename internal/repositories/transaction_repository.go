package repositories

import (
	"context"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

// TransactionRepository backs the combined purchases/expenses ledger.
// Rows are append-only.
type TransactionRepository struct {
	Store store.TableStore
}

func NewTransactionRepository(s store.TableStore) *TransactionRepository {
	return &TransactionRepository{Store: s}
}

func rowToTransaction(t *store.Table, row []string) *models.Transaction {
	return &models.Transaction{
		Date:     t.Get(row, "date"),
		Type:     models.TransactionType(t.Get(row, "type")),
		Category: t.Get(row, "category"),
		Item:     t.Get(row, "item"),
		ItemID:   t.Get(row, "item_id"),
		Qty:      parseFloat(t.Get(row, "qty")),
		Rate:     parseFloat(t.Get(row, "rate")),
		Amount:   parseFloat(t.Get(row, "amount")),
		UserID:   t.Get(row, "user_id"),
		Remarks:  t.Get(row, "remarks"),
	}
}

func (r *TransactionRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	t, err := r.Store.Load(ctx, store.EntityExpenses)
	if err != nil {
		return nil, err
	}
	txns := make([]*models.Transaction, 0, len(t.Rows))
	for _, row := range t.Rows {
		txns = append(txns, rowToTransaction(t, row))
	}
	return txns, nil
}

func (r *TransactionRepository) Append(ctx context.Context, txn *models.Transaction) error {
	return r.Store.Update(ctx, store.EntityExpenses, func(t *store.Table) error {
		t.Append(map[string]string{
			"date":     txn.Date,
			"type":     string(txn.Type),
			"category": txn.Category,
			"item":     txn.Item,
			"item_id":  txn.ItemID,
			"qty":      formatFloat(txn.Qty),
			"rate":     formatFloat(txn.Rate),
			"amount":   formatFloat(txn.Amount),
			"user_id":  txn.UserID,
			"remarks":  txn.Remarks,
		})
		return nil
	})
}
