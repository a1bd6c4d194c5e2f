package services

import (
	"context"
	"errors"
	"testing"
)

func TestAdjustStockIn(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	newQty, err := env.Ledger.Adjust(context.Background(), itemID, 5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if newQty != 15 {
		t.Errorf("new qty = %v, want 15", newQty)
	}
	if got := env.stockOf(t, itemID); got != 15 {
		t.Errorf("persisted qty = %v, want 15", got)
	}
}

func TestAdjustToExactlyZero(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	newQty, err := env.Ledger.Adjust(context.Background(), itemID, -10)
	if err != nil {
		t.Fatalf("adjust to zero should succeed: %v", err)
	}
	if newQty != 0 {
		t.Errorf("new qty = %v, want exactly 0", newQty)
	}
}

func TestAdjustBelowZeroFailsAndLeavesStock(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	_, err := env.Ledger.Adjust(context.Background(), itemID, -10.01)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 10 || insufficient.Requested != 10.01 {
		t.Errorf("error details = %+v", insufficient)
	}
	if got := env.stockOf(t, itemID); got != 10 {
		t.Errorf("stock changed after rejected adjust: %v", got)
	}
}

func TestAdjustUnknownItem(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Ledger.Adjust(context.Background(), "nope", 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCheckDoesNotWrite(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 10)

	if err := env.Ledger.Check(context.Background(), itemID, -3); err != nil {
		t.Fatalf("check: %v", err)
	}
	if got := env.stockOf(t, itemID); got != 10 {
		t.Errorf("check mutated stock: %v", got)
	}

	err := env.Ledger.Check(context.Background(), itemID, -11)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
}
