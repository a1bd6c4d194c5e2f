package services

import (
	"context"
	"testing"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/store"
)

type testEnv struct {
	Store     *store.CSVStore
	Inventory *repositories.InventoryRepository
	Txns      *repositories.TransactionRepository
	Orders    *repositories.OrderRepository
	Payments  *repositories.PaymentRepository
	Ledger    *LedgerService
	Sales     *SalesService
	Balances  *BalanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	inventory := repositories.NewInventoryRepository(s)
	txns := repositories.NewTransactionRepository(s)
	orders := repositories.NewOrderRepository(s)
	payments := repositories.NewPaymentRepository(s)
	ledger := NewLedgerService(inventory, nil)
	return &testEnv{
		Store:     s,
		Inventory: inventory,
		Txns:      txns,
		Orders:    orders,
		Payments:  payments,
		Ledger:    ledger,
		Sales:     NewSalesService(inventory, txns, orders, payments, ledger),
		Balances:  NewBalanceService(orders, payments),
	}
}

// seedItem adds an inventory item and returns its id.
func (e *testEnv) seedItem(t *testing.T, name string, qty float64) string {
	t.Helper()
	item := &models.InventoryItem{
		ItemName:  name,
		Category:  "Dairy",
		Unit:      "ltr",
		StockQty:  qty,
		Rate:      20,
		MinQty:    2,
		SellPrice: 25,
	}
	if err := e.Inventory.Upsert(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item.ItemID
}

func (e *testEnv) stockOf(t *testing.T, itemID string) float64 {
	t.Helper()
	item, err := e.Inventory.Get(context.Background(), itemID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	return item.StockQty
}
