package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dailyshop-backend/internal/alerts"
	"dailyshop-backend/internal/metrics"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/timeutil"
)

// ErrItemNotFound is returned when an adjustment names an unknown item.
var ErrItemNotFound = repositories.ErrItemNotFound

// InsufficientStockError is returned when a stock-out would drive an item's
// quantity below zero. The table is left untouched.
type InsufficientStockError struct {
	ItemID    string
	Available float64
	Requested float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: have %v, need %v", e.ItemID, e.Available, e.Requested)
}

// LedgerService is the Stock Ledger: the only code allowed to mutate
// stock_qty outside the inventory upsert form. Adjustments are serialized by
// a single mutex so concurrent callers cannot lose each other's writes.
type LedgerService struct {
	Inventory *repositories.InventoryRepository
	Alerts    *alerts.Hub // optional

	mu sync.Mutex
}

func NewLedgerService(inventory *repositories.InventoryRepository, hub *alerts.Hub) *LedgerService {
	return &LedgerService{Inventory: inventory, Alerts: hub}
}

// Check verifies that applying delta to the item would keep stock_qty >= 0,
// without writing anything.
func (s *LedgerService) Check(ctx context.Context, itemID string, delta float64) error {
	item, err := s.Inventory.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.StockQty+delta < 0 {
		return &InsufficientStockError{ItemID: itemID, Available: item.StockQty, Requested: -delta}
	}
	return nil
}

// Adjust applies a signed delta to one item's stock quantity and persists
// the result. Positive deltas are stock-in (purchases), negative are
// stock-out (sales). On failure nothing is written.
func (s *LedgerService) Adjust(ctx context.Context, itemID string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.Inventory.Get(ctx, itemID)
	if err != nil {
		return 0, err
	}

	newQty := item.StockQty + delta
	if newQty < 0 {
		metrics.InsufficientStockRejections.Inc()
		return 0, &InsufficientStockError{ItemID: itemID, Available: item.StockQty, Requested: -delta}
	}

	if err := s.Inventory.UpdateStock(ctx, itemID, newQty); err != nil {
		return 0, err
	}
	metrics.StockAdjustments.Inc()

	if s.Alerts != nil && newQty <= item.MinQty {
		s.Alerts.Publish(alerts.Alert{
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			StockQty:  newQty,
			MinQty:    item.MinQty,
			Timestamp: timeutil.Now(),
		})
	}

	return newQty, nil
}

// IsStockError reports whether err is one of the two ledger failures that
// must abort the surrounding transaction without a partial write.
func IsStockError(err error) bool {
	var insufficient *InsufficientStockError
	return errors.Is(err, ErrItemNotFound) || errors.As(err, &insufficient)
}
