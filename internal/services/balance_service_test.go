package services

import (
	"context"
	"testing"

	"dailyshop-backend/internal/models"
)

func TestBalancesAfterCreditSaleAndPayment(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 15)
	ctx := context.Background()

	if _, err := env.Sales.RecordOrder(ctx, &models.RecordOrderRequest{
		CustomerID:  "9000000001",
		ItemID:      itemID,
		Qty:         3,
		PaymentMode: "Credit",
	}, "admin"); err != nil {
		t.Fatalf("record order: %v", err)
	}
	if _, err := env.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{
		CustomerID: "9000000001",
		Amount:     50,
	}, "admin"); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	balances, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("got %d balance rows, want 1", len(balances))
	}
	b := balances[0]
	if b.CustomerID != "9000000001" {
		t.Errorf("customer = %q", b.CustomerID)
	}
	if b.CreditSalesTotal != 75 || b.PaymentsTotal != 50 || b.PendingBalance != 25 {
		t.Errorf("balance = %+v, want 75/50/25", b)
	}
}

func TestComputeBalancesIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 15)
	ctx := context.Background()

	if _, err := env.Sales.RecordOrder(ctx, &models.RecordOrderRequest{
		CustomerID:  "9000000001",
		ItemID:      itemID,
		Qty:         2,
		PaymentMode: "Credit",
	}, "admin"); err != nil {
		t.Fatalf("record order: %v", err)
	}

	first, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if *first[i] != *second[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCashOrdersExcludedFromBalances(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 15)
	ctx := context.Background()

	if _, err := env.Sales.RecordOrder(ctx, &models.RecordOrderRequest{
		CustomerID:  "9000000001",
		ItemID:      itemID,
		Qty:         4,
		PaymentMode: "Cash",
	}, "admin"); err != nil {
		t.Fatalf("record order: %v", err)
	}

	balances, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("cash-only history produced %d balance rows, want 0", len(balances))
	}
}

func TestPaymentOnlyCustomerAppearsWithNegativePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{
		CustomerID: "9000000002",
		Amount:     40,
	}, "admin"); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	balances, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("got %d balance rows, want 1", len(balances))
	}
	if balances[0].PendingBalance != -40 {
		t.Errorf("pending = %v, want -40", balances[0].PendingBalance)
	}
}

func TestBalancesSortedByPendingDescending(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.seedItem(t, "Milk", 100)
	ctx := context.Background()

	for _, o := range []struct {
		customer string
		qty      float64
	}{
		{"9000000001", 2}, // pending 50
		{"9000000002", 6}, // pending 150
		{"9000000003", 4}, // pending 100
	} {
		if _, err := env.Sales.RecordOrder(ctx, &models.RecordOrderRequest{
			CustomerID:  o.customer,
			ItemID:      itemID,
			Qty:         o.qty,
			PaymentMode: "Credit",
		}, "admin"); err != nil {
			t.Fatalf("record order for %s: %v", o.customer, err)
		}
	}

	balances, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	want := []string{"9000000002", "9000000003", "9000000001"}
	for i, id := range want {
		if balances[i].CustomerID != id {
			t.Errorf("position %d = %s, want %s", i, balances[i].CustomerID, id)
		}
	}
}

func TestCreditModeMatchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Rows imported from older files may carry lowercase modes; write one
	// directly to exercise the aggregation, bypassing mode normalization.
	if err := env.Orders.Append(ctx, &models.Order{
		Date:        "2025-01-05",
		CustomerID:  "9000000001",
		ItemID:      "abc",
		ItemName:    "Milk",
		Qty:         1,
		Rate:        25,
		Total:       25,
		PaymentMode: "credit",
		Balance:     25,
		UserID:      "admin",
	}); err != nil {
		t.Fatalf("append order: %v", err)
	}

	balances, err := env.Balances.ComputeBalances(ctx)
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	if len(balances) != 1 || balances[0].CreditSalesTotal != 25 {
		t.Errorf("lowercase credit row not aggregated: %+v", balances)
	}
}

func TestCustomerBalanceUnknownCustomerIsZero(t *testing.T) {
	env := newTestEnv(t)

	b, err := env.Balances.CustomerBalance(context.Background(), "9000000009")
	if err != nil {
		t.Fatalf("customer balance: %v", err)
	}
	if b.CustomerID != "9000000009" || b.CreditSalesTotal != 0 || b.PaymentsTotal != 0 || b.PendingBalance != 0 {
		t.Errorf("unknown customer row = %+v, want all zeros", b)
	}
}

func TestEmptyBalancesStillHaveFourColumns(t *testing.T) {
	env := newTestEnv(t)

	balances, err := env.Balances.ComputeBalances(context.Background())
	if err != nil {
		t.Fatalf("compute balances: %v", err)
	}
	table := BalancesToTable(balances)
	if len(table.Header) != 4 {
		t.Fatalf("header has %d columns, want 4", len(table.Header))
	}
	for i, col := range BalanceHeader {
		if table.Header[i] != col {
			t.Errorf("column %d = %q, want %q", i, table.Header[i], col)
		}
	}
	if len(table.Rows) != 0 {
		t.Errorf("empty summary produced %d rows", len(table.Rows))
	}
}
