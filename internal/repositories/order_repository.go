package repositories

import (
	"context"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

type OrderRepository struct {
	Store store.TableStore
}

func NewOrderRepository(s store.TableStore) *OrderRepository {
	return &OrderRepository{Store: s}
}

func rowToOrder(t *store.Table, row []string) *models.Order {
	return &models.Order{
		Date:        t.Get(row, "date"),
		CustomerID:  t.Get(row, "customer_id"),
		ItemID:      t.Get(row, "item_id"),
		ItemName:    t.Get(row, "item_name"),
		Qty:         parseFloat(t.Get(row, "qty")),
		Rate:        parseFloat(t.Get(row, "rate")),
		Total:       parseFloat(t.Get(row, "total")),
		PaymentMode: t.Get(row, "payment_mode"),
		Balance:     parseFloat(t.Get(row, "balance")),
		UserID:      t.Get(row, "user_id"),
		Remarks:     t.Get(row, "remarks"),
	}
}

func orderValues(o *models.Order) map[string]string {
	return map[string]string{
		"date":         o.Date,
		"customer_id":  o.CustomerID,
		"item_id":      o.ItemID,
		"item_name":    o.ItemName,
		"qty":          formatFloat(o.Qty),
		"rate":         formatFloat(o.Rate),
		"total":        formatFloat(o.Total),
		"payment_mode": o.PaymentMode,
		"balance":      formatFloat(o.Balance),
		"user_id":      o.UserID,
		"remarks":      o.Remarks,
	}
}

func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	t, err := r.Store.Load(ctx, store.EntityOrders)
	if err != nil {
		return nil, err
	}
	orders := make([]*models.Order, 0, len(t.Rows))
	for _, row := range t.Rows {
		orders = append(orders, rowToOrder(t, row))
	}
	return orders, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	t, err := r.Store.Load(ctx, store.EntityOrders)
	if err != nil {
		return nil, err
	}
	var orders []*models.Order
	for _, row := range t.Rows {
		if t.Get(row, "customer_id") == customerID {
			orders = append(orders, rowToOrder(t, row))
		}
	}
	return orders, nil
}

func (r *OrderRepository) Append(ctx context.Context, o *models.Order) error {
	return r.Store.Update(ctx, store.EntityOrders, func(t *store.Table) error {
		t.Append(orderValues(o))
		return nil
	})
}

// RemoveLast deletes the most recent row matching o. It is the compensating
// action for an order whose stock write failed after the row was appended.
func (r *OrderRepository) RemoveLast(ctx context.Context, o *models.Order) error {
	want := orderValues(o)
	return r.Store.Update(ctx, store.EntityOrders, func(t *store.Table) error {
		for i := len(t.Rows) - 1; i >= 0; i-- {
			row := t.Rows[i]
			match := true
			for name, v := range want {
				if t.Get(row, name) != v {
					match = false
					break
				}
			}
			if match {
				t.DeleteRow(i)
				return nil
			}
		}
		return nil // already gone; nothing to undo
	})
}
