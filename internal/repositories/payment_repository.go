package repositories

import (
	"context"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

type PaymentRepository struct {
	Store store.TableStore
}

func NewPaymentRepository(s store.TableStore) *PaymentRepository {
	return &PaymentRepository{Store: s}
}

func rowToPayment(t *store.Table, row []string) *models.Payment {
	return &models.Payment{
		Date:       t.Get(row, "date"),
		CustomerID: t.Get(row, "customer_id"),
		Amount:     parseFloat(t.Get(row, "amount")),
		Mode:       t.Get(row, "mode"),
		Remarks:    t.Get(row, "remarks"),
		UserID:     t.Get(row, "user_id"),
	}
}

func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	t, err := r.Store.Load(ctx, store.EntityPayments)
	if err != nil {
		return nil, err
	}
	payments := make([]*models.Payment, 0, len(t.Rows))
	for _, row := range t.Rows {
		payments = append(payments, rowToPayment(t, row))
	}
	return payments, nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Payment, error) {
	t, err := r.Store.Load(ctx, store.EntityPayments)
	if err != nil {
		return nil, err
	}
	var payments []*models.Payment
	for _, row := range t.Rows {
		if t.Get(row, "customer_id") == customerID {
			payments = append(payments, rowToPayment(t, row))
		}
	}
	return payments, nil
}

func (r *PaymentRepository) Append(ctx context.Context, p *models.Payment) error {
	return r.Store.Update(ctx, store.EntityPayments, func(t *store.Table) error {
		t.Append(map[string]string{
			"date":        p.Date,
			"customer_id": p.CustomerID,
			"amount":      formatFloat(p.Amount),
			"mode":        p.Mode,
			"remarks":     p.Remarks,
			"user_id":     p.UserID,
		})
		return nil
	})
}
