package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyshop-backend/internal/cache"
	"dailyshop-backend/internal/metrics"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/timeutil"
)

// SalesService holds the transaction recorders: the thin operations that
// append a ledger row and, when stock is affected, drive the Stock Ledger.
// Ordering is always check-then-commit: the stock invariant is validated in
// a read-only pass before any row is written.
type SalesService struct {
	Inventory    *repositories.InventoryRepository
	Transactions *repositories.TransactionRepository
	Orders       *repositories.OrderRepository
	Payments     *repositories.PaymentRepository
	Ledger       *LedgerService
}

func NewSalesService(
	inventory *repositories.InventoryRepository,
	transactions *repositories.TransactionRepository,
	orders *repositories.OrderRepository,
	payments *repositories.PaymentRepository,
	ledger *LedgerService,
) *SalesService {
	return &SalesService{
		Inventory:    inventory,
		Transactions: transactions,
		Orders:       orders,
		Payments:     payments,
		Ledger:       ledger,
	}
}

// RecordPurchase logs a stock purchase and raises the item's quantity.
// The ledger row is written first; a positive adjustment cannot fail the
// stock invariant, so no compensating delete is needed.
func (s *SalesService) RecordPurchase(ctx context.Context, req *models.RecordPurchaseRequest, userID string) (*models.Transaction, error) {
	if req.Qty <= 0 {
		return nil, errors.New("qty must be positive")
	}
	if req.Rate < 0 {
		return nil, errors.New("rate cannot be negative")
	}
	item, err := s.Inventory.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Date:     orDefaultDate(req.Date),
		Type:     models.TxnPurchase,
		Category: item.Category,
		Item:     item.ItemName,
		ItemID:   item.ItemID,
		Qty:      req.Qty,
		Rate:     req.Rate,
		Amount:   req.Qty * req.Rate,
		UserID:   userID,
		Remarks:  req.Remarks,
	}
	if err := s.Transactions.Append(ctx, txn); err != nil {
		return nil, fmt.Errorf("append purchase: %w", err)
	}
	if _, err := s.Ledger.Adjust(ctx, item.ItemID, req.Qty); err != nil {
		return nil, fmt.Errorf("stock-in after purchase append: %w", err)
	}
	metrics.PurchasesRecorded.Inc()
	cache.Invalidate(ctx, cache.DashboardSummaryKey)
	return txn, nil
}

// RecordExpense logs a plain expense. Expenses never reference inventory.
func (s *SalesService) RecordExpense(ctx context.Context, req *models.RecordExpenseRequest, userID string) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	txn := &models.Transaction{
		Date:     orDefaultDate(req.Date),
		Type:     models.TxnExpense,
		Category: req.Category,
		Item:     req.Item,
		Amount:   req.Amount,
		UserID:   userID,
		Remarks:  req.Remarks,
	}
	if err := s.Transactions.Append(ctx, txn); err != nil {
		return nil, fmt.Errorf("append expense: %w", err)
	}
	cache.Invalidate(ctx, cache.DashboardSummaryKey)
	return txn, nil
}

// RecordOrder records a sale and decrements stock. Sequence: read-only
// stock check, append the order row, write the stock decrement. If the
// stock write fails after the append, the appended row is rolled back so
// the two tables never disagree.
func (s *SalesService) RecordOrder(ctx context.Context, req *models.RecordOrderRequest, userID string) (*models.Order, error) {
	if req.Qty <= 0 {
		return nil, errors.New("qty must be positive")
	}
	mode, err := normalizePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}
	customer := strings.TrimSpace(req.CustomerID)
	if customer == "" {
		customer = models.GuestCustomerID
	}
	if mode == models.PaymentModeCredit && customer == models.GuestCustomerID {
		return nil, errors.New("credit orders require a registered customer")
	}

	item, err := s.Inventory.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	rate := req.Rate
	if rate == 0 {
		rate = item.SellPrice
	}

	if err := s.Ledger.Check(ctx, item.ItemID, -req.Qty); err != nil {
		return nil, err
	}

	total := req.Qty * rate
	order := &models.Order{
		Date:        orDefaultDate(req.Date),
		CustomerID:  customer,
		ItemID:      item.ItemID,
		ItemName:    item.ItemName,
		Qty:         req.Qty,
		Rate:        rate,
		Total:       total,
		PaymentMode: mode,
		UserID:      userID,
		Remarks:     req.Remarks,
	}
	// Balance is a point-in-time snapshot, fixed here and never updated.
	if mode == models.PaymentModeCredit {
		order.Balance = total
	}

	if err := s.Orders.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}
	if _, err := s.Ledger.Adjust(ctx, item.ItemID, -req.Qty); err != nil {
		// Roll back the ledger append so no orphaned order row survives.
		if rbErr := s.Orders.RemoveLast(ctx, order); rbErr != nil {
			return nil, fmt.Errorf("stock-out failed (%w) and rollback failed: %v", err, rbErr)
		}
		return nil, err
	}
	metrics.OrdersRecorded.Inc()
	cache.Invalidate(ctx, cache.DashboardSummaryKey)
	return order, nil
}

// RecordPayment logs a payment against a customer's credit balance. The
// amount is not checked against the outstanding balance: overpaying, or
// paying with no prior credit, is allowed.
func (s *SalesService) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest, userID string) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, errors.New("customer_id is required")
	}
	mode := req.Mode
	if mode == "" {
		mode = models.PaymentModeCash
	}

	payment := &models.Payment{
		Date:       orDefaultDate(req.Date),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Amount:     req.Amount,
		Mode:       mode,
		Remarks:    req.Remarks,
		UserID:     userID,
	}
	if err := s.Payments.Append(ctx, payment); err != nil {
		return nil, fmt.Errorf("append payment: %w", err)
	}
	metrics.PaymentsRecorded.Inc()
	cache.Invalidate(ctx, cache.DashboardSummaryKey)
	return payment, nil
}

func orDefaultDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return timeutil.Today()
	}
	return date
}

func normalizePaymentMode(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "cash", "":
		return models.PaymentModeCash, nil
	case "credit":
		return models.PaymentModeCredit, nil
	}
	return "", fmt.Errorf("unknown payment mode %q", mode)
}
