package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/store"
)

// BalanceHeader is the canonical column order of the balance summary table.
var BalanceHeader = []string{"customer_id", "credit_sales_total", "payments_total", "pending_balance"}

// BalanceService derives per-customer pending balances. There is no cached
// running balance anywhere: every call re-reads the orders and payments
// ledgers, so the result is always consistent with them.
type BalanceService struct {
	Orders   *repositories.OrderRepository
	Payments *repositories.PaymentRepository
}

func NewBalanceService(orders *repositories.OrderRepository, payments *repositories.PaymentRepository) *BalanceService {
	return &BalanceService{Orders: orders, Payments: payments}
}

// ComputeBalances aggregates credit sales and payments per customer and
// outer-joins the two: a customer appears if they have either. Sorted by
// pending balance descending (largest debtors first), customer id as the
// tie-break.
func (s *BalanceService) ComputeBalances(ctx context.Context) ([]*models.CustomerBalance, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string]*models.CustomerBalance)
	get := func(id string) *models.CustomerBalance {
		b, ok := byCustomer[id]
		if !ok {
			b = &models.CustomerBalance{CustomerID: id}
			byCustomer[id] = b
		}
		return b
	}

	for _, o := range orders {
		if !strings.EqualFold(o.PaymentMode, models.PaymentModeCredit) {
			continue
		}
		get(o.CustomerID).CreditSalesTotal += o.Total
	}
	for _, p := range payments {
		get(p.CustomerID).PaymentsTotal += p.Amount
	}

	balances := make([]*models.CustomerBalance, 0, len(byCustomer))
	for _, b := range byCustomer {
		b.PendingBalance = b.CreditSalesTotal - b.PaymentsTotal
		balances = append(balances, b)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].PendingBalance != balances[j].PendingBalance {
			return balances[i].PendingBalance > balances[j].PendingBalance
		}
		return balances[i].CustomerID < balances[j].CustomerID
	})
	return balances, nil
}

// CustomerBalance returns the summary row for one customer. A customer with
// no credit history gets an all-zero row rather than an error.
func (s *BalanceService) CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error) {
	balances, err := s.ComputeBalances(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		if b.CustomerID == customerID {
			return b, nil
		}
	}
	return &models.CustomerBalance{CustomerID: customerID}, nil
}

// BalancesToTable renders the summary in tabular form. An empty summary
// still carries all four columns.
func BalancesToTable(balances []*models.CustomerBalance) *store.Table {
	header := make([]string, len(BalanceHeader))
	copy(header, BalanceHeader)
	t := &store.Table{Header: header}
	for _, b := range balances {
		t.Rows = append(t.Rows, []string{
			b.CustomerID,
			formatAmount(b.CreditSalesTotal),
			formatAmount(b.PaymentsTotal),
			formatAmount(b.PendingBalance),
		})
	}
	return t
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
