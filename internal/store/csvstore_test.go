package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	s, err := NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestLoadMissingFileReturnsEmptyTable(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load(context.Background(), EntityOrders)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(table.Rows))
	}
	if !table.Equal(NewTable(EntityOrders)) {
		t.Fatalf("header mismatch: %v", table.Header)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	table := NewTable(EntityPayments)
	table.Append(map[string]string{
		"date": "2024-01-05", "customer_id": "9000000001",
		"amount": "50", "mode": "Cash", "remarks": "part payment", "user_id": "u1",
	})
	table.Append(map[string]string{
		"date": "2024-01-06", "customer_id": "9000000002",
		"amount": "120.5", "mode": "UPI", "user_id": "u1",
	})

	if err := s.Save(ctx, EntityPayments, table); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := s.Load(ctx, EntityPayments)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Equal(table) {
		t.Fatalf("round trip mismatch:\nsaved  %v\nloaded %v", table.Rows, loaded.Rows)
	}
}

func TestLoadBackfillsMissingColumns(t *testing.T) {
	s := newTestStore(t)

	// An old-format inventory file without min_qty and sell_price.
	old := "item_id,item_name,category,unit,stock_qty,rate\nabc123,Milk,Dairy,ltr,10,20\n"
	if err := os.WriteFile(filepath.Join(s.Dir(), "inventory.csv"), []byte(old), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := s.Load(context.Background(), EntityInventory)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(table.Header) != len(Schemas[EntityInventory]) {
		t.Fatalf("header not conformed: %v", table.Header)
	}
	row := table.Rows[0]
	if got := table.Get(row, "item_name"); got != "Milk" {
		t.Errorf("item_name = %q", got)
	}
	if got := table.Get(row, "sell_price"); got != "" {
		t.Errorf("backfilled sell_price = %q, want empty", got)
	}
}

func TestLoadDropsUnknownColumns(t *testing.T) {
	s := newTestStore(t)

	old := "date,customer_id,amount,mode,remarks,user_id,extra\n2024-01-01,9000000001,10,Cash,,u1,zzz\n"
	if err := os.WriteFile(filepath.Join(s.Dir(), "payments.csv"), []byte(old), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := s.Load(context.Background(), EntityPayments)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Col("extra") != -1 {
		t.Fatalf("unknown column kept: %v", table.Header)
	}
	if got := table.Get(table.Rows[0], "amount"); got != "10" {
		t.Errorf("amount = %q", got)
	}
}

func TestLoadTruncatesOverlongRows(t *testing.T) {
	s := newTestStore(t)

	// Canonical header, but a hand-edited row grew a stray trailing field.
	ragged := "date,customer_id,amount,mode,remarks,user_id\n2024-01-01,9000000001,10,Cash,,u1,stray\n"
	if err := os.WriteFile(filepath.Join(s.Dir(), "payments.csv"), []byte(ragged), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := s.Load(context.Background(), EntityPayments)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := len(table.Rows[0]), len(Schemas[EntityPayments]); got != want {
		t.Fatalf("row width = %d, want %d: %v", got, want, table.Rows[0])
	}
	if got := table.Get(table.Rows[0], "user_id"); got != "u1" {
		t.Errorf("user_id = %q", got)
	}
}

func TestLoadWindows1252Fallback(t *testing.T) {
	s := newTestStore(t)

	// 0xE9 is "é" in Windows-1252 and invalid on its own in UTF-8.
	data := append([]byte("date,customer_id,amount,mode,remarks,user_id\n2024-01-01,9000000001,10,Cash,caf"), 0xE9)
	data = append(data, []byte(",u1\n")...)
	if err := os.WriteFile(filepath.Join(s.Dir(), "payments.csv"), data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := s.Load(context.Background(), EntityPayments)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := table.Get(table.Rows[0], "remarks"); got != "café" {
		t.Errorf("remarks = %q, want café", got)
	}
}

func TestUpdateAbortsWithoutWriting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	table := NewTable(EntityOrders)
	table.Append(map[string]string{"date": "2024-01-01", "customer_id": "GUEST", "total": "10"})
	if err := s.Save(ctx, EntityOrders, table); err != nil {
		t.Fatalf("save: %v", err)
	}

	boom := errors.New("boom")
	err := s.Update(ctx, EntityOrders, func(t *Table) error {
		t.Append(map[string]string{"date": "2024-01-02"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected update error, got %v", err)
	}

	loaded, err := s.Load(ctx, EntityOrders)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Rows) != 1 {
		t.Fatalf("aborted update was persisted: %d rows", len(loaded.Rows))
	}
}

func TestSaveReplacesWholeFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	big := NewTable(EntityExpenses)
	for i := 0; i < 5; i++ {
		big.Append(map[string]string{"date": "2024-01-01", "type": "Expense", "amount": "1"})
	}
	if err := s.Save(ctx, EntityExpenses, big); err != nil {
		t.Fatalf("save: %v", err)
	}

	small := NewTable(EntityExpenses)
	small.Append(map[string]string{"date": "2024-02-01", "type": "Expense", "amount": "9"})
	if err := s.Save(ctx, EntityExpenses, small); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load(ctx, EntityExpenses)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Rows) != 1 {
		t.Fatalf("save did not replace file: %d rows", len(loaded.Rows))
	}
}
