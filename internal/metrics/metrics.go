package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dailyshop_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dailyshop_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	StockAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dailyshop_stock_adjustments_total",
		Help: "Successful stock quantity adjustments",
	})

	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dailyshop_insufficient_stock_rejections_total",
		Help: "Stock adjustments rejected because quantity would go negative",
	})

	OrdersRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dailyshop_orders_recorded_total",
		Help: "Sales orders recorded",
	})

	PurchasesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dailyshop_purchases_recorded_total",
		Help: "Stock purchases recorded",
	})

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dailyshop_payments_recorded_total",
		Help: "Customer payments recorded",
	})
)
