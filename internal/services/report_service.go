package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"dailyshop-backend/internal/cache"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/store"
	"dailyshop-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// Exportable lists the entities that may be dumped through the report API.
// The users table stays private (it carries password hashes).
var Exportable = map[store.Entity]bool{
	store.EntityInventory: true,
	store.EntityExpenses:  true,
	store.EntityOrders:    true,
	store.EntityPayments:  true,
	store.EntityFeedback:  true,
}

// ReportService renders CSV dumps and simple tabular PDFs from the ledgers.
type ReportService struct {
	Store        store.TableStore
	Inventory    *repositories.InventoryRepository
	Transactions *repositories.TransactionRepository
	Orders       *repositories.OrderRepository
	Payments     *repositories.PaymentRepository
	Balances     *BalanceService
}

func NewReportService(
	s store.TableStore,
	inventory *repositories.InventoryRepository,
	transactions *repositories.TransactionRepository,
	orders *repositories.OrderRepository,
	payments *repositories.PaymentRepository,
	balances *BalanceService,
) *ReportService {
	return &ReportService{
		Store:        s,
		Inventory:    inventory,
		Transactions: transactions,
		Orders:       orders,
		Payments:     payments,
		Balances:     balances,
	}
}

// TableCSV dumps one entity table as CSV, header row included.
func (s *ReportService) TableCSV(ctx context.Context, entity store.Entity) ([]byte, error) {
	if !Exportable[entity] {
		return nil, fmt.Errorf("entity %q is not exportable", entity)
	}
	table, err := s.Store.Load(ctx, entity)
	if err != nil {
		return nil, err
	}
	return tableToCSV(table)
}

// BalancesCSV dumps the recomputed balance summary. An empty summary still
// produces the four-column header.
func (s *ReportService) BalancesCSV(ctx context.Context) ([]byte, error) {
	balances, err := s.Balances.ComputeBalances(ctx)
	if err != nil {
		return nil, err
	}
	return tableToCSV(BalancesToTable(balances))
}

func tableToCSV(t *store.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InventoryPDF renders the stock register.
func (s *ReportService) InventoryPDF(ctx context.Context) ([]byte, error) {
	items, err := s.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ItemName, it.Category, it.Unit,
			fmt.Sprintf("%.2f", it.StockQty),
			fmt.Sprintf("%.2f", it.Rate),
			fmt.Sprintf("%.2f", it.SellPrice),
		})
	}
	return tablePDF("Inventory Report",
		[]string{"Item", "Category", "Unit", "Stock", "Rate", "Sell Price"},
		[]float64{50, 35, 20, 25, 30, 30},
		rows)
}

// ExpensesPDF renders the combined purchases/expenses ledger.
func (s *ReportService) ExpensesPDF(ctx context.Context) ([]byte, error) {
	txns, err := s.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, []string{
			txn.Date, string(txn.Type), txn.Category, txn.Item,
			fmt.Sprintf("%.2f", txn.Qty),
			fmt.Sprintf("%.2f", txn.Amount),
		})
	}
	return tablePDF("Purchases & Expenses Report",
		[]string{"Date", "Type", "Category", "Item", "Qty", "Amount"},
		[]float64{28, 25, 32, 50, 25, 30},
		rows)
}

// BalancesPDF renders the customer credit summary, largest debtors first.
func (s *ReportService) BalancesPDF(ctx context.Context) ([]byte, error) {
	balances, err := s.Balances.ComputeBalances(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, []string{
			b.CustomerID,
			fmt.Sprintf("%.2f", b.CreditSalesTotal),
			fmt.Sprintf("%.2f", b.PaymentsTotal),
			fmt.Sprintf("%.2f", b.PendingBalance),
		})
	}
	return tablePDF("Customer Credit Balances",
		[]string{"Customer", "Credit Sales", "Payments", "Pending"},
		[]float64{50, 45, 45, 50},
		rows)
}

// tablePDF renders a fixed-width-column table. Cell text is truncated to
// fit its column.
func tablePDF(title string, header []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			max := int(widths[i] / 2)
			if len(cell) > max {
				cell = cell[:max-3] + "..."
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DashboardSummary computes the headline figures, with a short-lived Redis
// cache in front. The balance totals themselves are always recomputed from
// the ledgers when the cache misses.
func (s *ReportService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var cached models.DashboardSummary
	if cache.GetJSON(ctx, cache.DashboardSummaryKey, &cached) {
		return &cached, nil
	}

	items, err := s.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := s.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.Balances.ComputeBalances(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		OrdersRecorded:   len(orders),
		PaymentsReceived: len(payments),
		CustomerCount:    len(balances),
	}
	for _, txn := range txns {
		summary.TotalExpenses += txn.Amount
	}
	for _, it := range items {
		summary.StockValue += it.StockQty * it.Rate
		if it.StockQty < it.MinQty {
			summary.LowStockItems = append(summary.LowStockItems, it)
		}
	}
	for _, b := range balances {
		summary.TotalPending += b.PendingBalance
	}

	cache.SetJSON(ctx, cache.DashboardSummaryKey, summary, 30*time.Second)
	return summary, nil
}
