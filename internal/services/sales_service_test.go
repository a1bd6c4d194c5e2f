package services

import (
	"context"
	"errors"
	"testing"

	"dailyshop-backend/internal/models"
)

func TestRecordPurchaseRaisesStockAndLogsRow(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	txn, err := env.Sales.RecordPurchase(context.Background(), &models.RecordPurchaseRequest{
		ItemID: itemID,
		Qty:    5,
		Rate:   20,
	}, "admin")
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}
	if txn.Amount != 100 {
		t.Errorf("amount = %v, want 100", txn.Amount)
	}
	if txn.Type != models.TxnPurchase {
		t.Errorf("type = %v, want Purchase", txn.Type)
	}
	if txn.Item != "Milk" || txn.Category != "Dairy" {
		t.Errorf("item details not copied from inventory: %+v", txn)
	}
	if got := env.stockOf(t, itemID); got != 15 {
		t.Errorf("stock = %v, want 15", got)
	}

	txns, err := env.Txns.List(context.Background())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transaction rows, want 1", len(txns))
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)
	ctx := context.Background()

	if _, err := env.Sales.RecordPurchase(ctx, &models.RecordPurchaseRequest{ItemID: itemID, Qty: 0, Rate: 20}, "admin"); err == nil {
		t.Error("zero qty should be rejected")
	}
	if _, err := env.Sales.RecordPurchase(ctx, &models.RecordPurchaseRequest{ItemID: itemID, Qty: 5, Rate: -1}, "admin"); err == nil {
		t.Error("negative rate should be rejected")
	}
	if _, err := env.Sales.RecordPurchase(ctx, &models.RecordPurchaseRequest{ItemID: "missing", Qty: 5, Rate: 20}, "admin"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item: got %v, want ErrItemNotFound", err)
	}
	if got := env.stockOf(t, itemID); got != 10 {
		t.Errorf("stock changed after rejected purchases: %v", got)
	}
}

func TestRecordExpenseNeverTouchesInventory(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	txn, err := env.Sales.RecordExpense(context.Background(), &models.RecordExpenseRequest{
		Category: "Utilities",
		Item:     "Electricity bill",
		Amount:   850,
	}, "admin")
	if err != nil {
		t.Fatalf("record expense: %v", err)
	}
	if txn.Type != models.TxnExpense {
		t.Errorf("type = %v, want Expense", txn.Type)
	}
	if txn.ItemID != "" {
		t.Errorf("expense row carries item_id %q", txn.ItemID)
	}
	if got := env.stockOf(t, itemID); got != 10 {
		t.Errorf("stock = %v, want 10", got)
	}
}

func TestRecordCreditOrderDecrementsStockAndSnapshotsBalance(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 15)

	order, err := env.Sales.RecordOrder(context.Background(), &models.RecordOrderRequest{
		CustomerID:  "9000000001",
		ItemID:      itemID,
		Qty:         3,
		PaymentMode: "Credit",
	}, "admin")
	if err != nil {
		t.Fatalf("record order: %v", err)
	}
	// Rate falls back to the item's sell price when the request omits it.
	if order.Rate != 25 {
		t.Errorf("rate = %v, want 25", order.Rate)
	}
	if order.Total != 75 {
		t.Errorf("total = %v, want 75", order.Total)
	}
	if order.Balance != 75 {
		t.Errorf("balance = %v, want 75 (credit snapshot)", order.Balance)
	}
	if got := env.stockOf(t, itemID); got != 12 {
		t.Errorf("stock = %v, want 12", got)
	}
}

func TestRecordCashOrderHasZeroBalance(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 15)

	order, err := env.Sales.RecordOrder(context.Background(), &models.RecordOrderRequest{
		ItemID:      itemID,
		Qty:         2,
		Rate:        30,
		PaymentMode: "cash",
	}, "staff1")
	if err != nil {
		t.Fatalf("record order: %v", err)
	}
	if order.CustomerID != models.GuestCustomerID {
		t.Errorf("customer = %q, want GUEST for walk-in sale", order.CustomerID)
	}
	if order.PaymentMode != models.PaymentModeCash {
		t.Errorf("mode = %q, want normalized Cash", order.PaymentMode)
	}
	if order.Balance != 0 {
		t.Errorf("balance = %v, want 0 for cash", order.Balance)
	}
	if order.Total != 60 {
		t.Errorf("total = %v, want 60", order.Total)
	}
}

func TestRecordOrderInsufficientStockLeavesBothTables(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 12)

	_, err := env.Sales.RecordOrder(context.Background(), &models.RecordOrderRequest{
		ItemID:      itemID,
		Qty:         20,
		PaymentMode: "Cash",
	}, "admin")
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if got := env.stockOf(t, itemID); got != 12 {
		t.Errorf("stock = %v, want untouched 12", got)
	}

	orders, err := env.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("got %d order rows after rejected sale, want 0", len(orders))
	}
}

func TestRecordOrderCreditRequiresCustomer(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	_, err := env.Sales.RecordOrder(context.Background(), &models.RecordOrderRequest{
		ItemID:      itemID,
		Qty:         1,
		PaymentMode: "Credit",
	}, "admin")
	if err == nil {
		t.Fatal("credit order without a customer should be rejected")
	}
}

func TestRecordOrderUnknownPaymentMode(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	_, err := env.Sales.RecordOrder(context.Background(), &models.RecordOrderRequest{
		ItemID:      itemID,
		Qty:         1,
		PaymentMode: "Cheque",
	}, "admin")
	if err == nil {
		t.Fatal("unknown payment mode should be rejected")
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{CustomerID: "9000000001", Amount: 0}, "admin"); err == nil {
		t.Error("zero amount should be rejected")
	}
	if _, err := env.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{CustomerID: " ", Amount: 50}, "admin"); err == nil {
		t.Error("blank customer should be rejected")
	}

	payment, err := env.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{CustomerID: "9000000001", Amount: 50}, "admin")
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if payment.Mode != models.PaymentModeCash {
		t.Errorf("mode = %q, want default Cash", payment.Mode)
	}
	if payment.Date == "" {
		t.Error("date should default to today")
	}
}
