package repositories

import (
	"context"
	"errors"
	"testing"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

func newInventoryRepo(t *testing.T) *InventoryRepository {
	t.Helper()
	s, err := store.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewInventoryRepository(s)
}

func TestUpsertDerivesIDAndRoundsPrice(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	item := &models.InventoryItem{
		ItemName:  "Milk",
		Category:  "Dairy",
		Unit:      "ltr",
		StockQty:  10,
		Rate:      20,
		MinQty:    5,
		SellPrice: 23, // rounds to 25
	}
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if item.ItemID != models.MakeItemID("Milk", "Dairy") {
		t.Errorf("item id not derived: %q", item.ItemID)
	}

	got, err := repo.Get(ctx, item.ItemID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SellPrice != 25 {
		t.Errorf("sell price = %v, want 25", got.SellPrice)
	}
	if got.StockQty != 10 {
		t.Errorf("stock qty = %v, want 10", got.StockQty)
	}
}

func TestUpsertReplacesExistingItem(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	first := &models.InventoryItem{ItemName: "Milk", Category: "Dairy", StockQty: 10, SellPrice: 25}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second := &models.InventoryItem{ItemName: "Milk", Category: "Dairy", StockQty: 12, SellPrice: 30}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one row after upsert, got %d", len(items))
	}
	if items[0].StockQty != 12 {
		t.Errorf("stock qty = %v, want 12", items[0].StockQty)
	}
}

func TestUpdateStockOnlyTouchesQty(t *testing.T) {
	repo := newInventoryRepo(t)
	ctx := context.Background()

	item := &models.InventoryItem{ItemName: "Curd", Category: "Dairy", StockQty: 8, Rate: 30, SellPrice: 40}
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpdateStock(ctx, item.ItemID, 3.5); err != nil {
		t.Fatalf("update stock: %v", err)
	}

	got, err := repo.Get(ctx, item.ItemID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StockQty != 3.5 {
		t.Errorf("stock qty = %v, want 3.5", got.StockQty)
	}
	if got.Rate != 30 || got.SellPrice != 40 {
		t.Errorf("unrelated fields changed: %+v", got)
	}
}

func TestGetUnknownItem(t *testing.T) {
	repo := newInventoryRepo(t)
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
