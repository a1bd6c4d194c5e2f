package models

// CustomerBalance is one row of the per-customer credit summary, recomputed
// in full from the orders and payments ledgers on every read.
type CustomerBalance struct {
	CustomerID       string  `json:"customer_id"`
	CreditSalesTotal float64 `json:"credit_sales_total"`
	PaymentsTotal    float64 `json:"payments_total"`
	PendingBalance   float64 `json:"pending_balance"`
}

// DashboardSummary holds the headline figures for the dashboard page.
type DashboardSummary struct {
	TotalExpenses   float64          `json:"total_expenses"`
	StockValue      float64          `json:"stock_value"`
	TotalPending    float64          `json:"total_pending"`
	LowStockItems   []*InventoryItem `json:"low_stock_items"`
	CustomerCount   int              `json:"customer_count"`
	OrdersRecorded  int              `json:"orders_recorded"`
	PaymentsReceived int             `json:"payments_received"`
}
