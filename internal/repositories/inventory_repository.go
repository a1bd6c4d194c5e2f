package repositories

import (
	"context"
	"errors"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

var ErrItemNotFound = errors.New("inventory item not found")

type InventoryRepository struct {
	Store store.TableStore
}

func NewInventoryRepository(s store.TableStore) *InventoryRepository {
	return &InventoryRepository{Store: s}
}

func rowToItem(t *store.Table, row []string) *models.InventoryItem {
	return &models.InventoryItem{
		ItemID:    t.Get(row, "item_id"),
		ItemName:  t.Get(row, "item_name"),
		Category:  t.Get(row, "category"),
		Unit:      t.Get(row, "unit"),
		StockQty:  parseFloat(t.Get(row, "stock_qty")),
		Rate:      parseFloat(t.Get(row, "rate")),
		MinQty:    parseFloat(t.Get(row, "min_qty")),
		SellPrice: parseFloat(t.Get(row, "sell_price")),
	}
}

func (r *InventoryRepository) List(ctx context.Context) ([]*models.InventoryItem, error) {
	t, err := r.Store.Load(ctx, store.EntityInventory)
	if err != nil {
		return nil, err
	}
	items := make([]*models.InventoryItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		items = append(items, rowToItem(t, row))
	}
	return items, nil
}

func (r *InventoryRepository) Get(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	t, err := r.Store.Load(ctx, store.EntityInventory)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if t.Get(row, "item_id") == itemID {
			return rowToItem(t, row), nil
		}
	}
	return nil, ErrItemNotFound
}

// Upsert creates or replaces an item. The item id is derived from name and
// category when absent, and the selling price is rounded to the nearest 5
// before it is written.
func (r *InventoryRepository) Upsert(ctx context.Context, item *models.InventoryItem) error {
	if item.ItemName == "" {
		return errors.New("item_name is required")
	}
	if item.StockQty < 0 {
		return errors.New("stock_qty cannot be negative")
	}
	if item.ItemID == "" {
		item.ItemID = models.MakeItemID(item.ItemName, item.Category)
	}
	item.SellPrice = models.RoundPriceToFive(item.SellPrice)

	return r.Store.Update(ctx, store.EntityInventory, func(t *store.Table) error {
		for _, row := range t.Rows {
			if t.Get(row, "item_id") != item.ItemID {
				continue
			}
			set := func(name, val string) {
				if c := t.Col(name); c >= 0 && c < len(row) {
					row[c] = val
				}
			}
			set("item_name", item.ItemName)
			set("category", item.Category)
			set("unit", item.Unit)
			set("stock_qty", formatFloat(item.StockQty))
			set("rate", formatFloat(item.Rate))
			set("min_qty", formatFloat(item.MinQty))
			set("sell_price", formatFloat(item.SellPrice))
			return nil
		}
		t.Append(map[string]string{
			"item_id":    item.ItemID,
			"item_name":  item.ItemName,
			"category":   item.Category,
			"unit":       item.Unit,
			"stock_qty":  formatFloat(item.StockQty),
			"rate":       formatFloat(item.Rate),
			"min_qty":    formatFloat(item.MinQty),
			"sell_price": formatFloat(item.SellPrice),
		})
		return nil
	})
}

// UpdateStock writes a new stock quantity for one item, leaving every other
// field untouched. Only the Stock Ledger calls this.
func (r *InventoryRepository) UpdateStock(ctx context.Context, itemID string, qty float64) error {
	return r.Store.Update(ctx, store.EntityInventory, func(t *store.Table) error {
		col := t.Col("stock_qty")
		for _, row := range t.Rows {
			if t.Get(row, "item_id") == itemID {
				row[col] = formatFloat(qty)
				return nil
			}
		}
		return ErrItemNotFound
	})
}
