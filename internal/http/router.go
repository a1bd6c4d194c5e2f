package http

import (
	"net/http"

	"dailyshop-backend/internal/alerts"
	"dailyshop-backend/internal/handlers"
	"dailyshop-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	totpHandler *handlers.TOTPHandler,
	inventoryHandler *handlers.InventoryHandler,
	transactionHandler *handlers.TransactionHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	balanceHandler *handlers.BalanceHandler,
	feedbackHandler *handlers.FeedbackHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	systemHandler *handlers.SystemHandler,
	backupHandler *handlers.BackupHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	hub *alerts.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Payment gateway webhook (signature-verified, no JWT)
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// Low-stock alert stream for the dashboard
	r.HandleFunc("/ws/alerts", hub.ServeWS)

	staffOrAdmin := authMiddleware.RequireRole("staff", "admin")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeactivateUser).Methods("DELETE")

	// Protected API routes - 2FA self-service
	totpAPI := r.PathPrefix("/api/me/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/enroll", totpHandler.Enroll).Methods("POST")
	totpAPI.HandleFunc("/verify", totpHandler.Verify).Methods("POST")
	totpAPI.HandleFunc("", totpHandler.Disable).Methods("DELETE")

	// Protected API routes - Inventory
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.Use(authMiddleware.Authenticate)
	itemsAPI.HandleFunc("", inventoryHandler.ListItems).Methods("GET")
	itemsAPI.HandleFunc("", staffOrAdmin(http.HandlerFunc(inventoryHandler.UpsertItem)).ServeHTTP).Methods("POST")
	itemsAPI.HandleFunc("/{id}", inventoryHandler.GetItem).Methods("GET")

	// Protected API routes - Purchases & Expenses
	txnsAPI := r.PathPrefix("/api/transactions").Subrouter()
	txnsAPI.Use(staffOrAdmin)
	txnsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	txnsAPI.HandleFunc("/purchases", transactionHandler.RecordPurchase).Methods("POST")
	txnsAPI.HandleFunc("/expenses", transactionHandler.RecordExpense).Methods("POST")

	// Protected API routes - Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(staffOrAdmin)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.RecordOrder).Methods("POST")
	ordersAPI.HandleFunc("/customer/{customer_id}", orderHandler.ListOrdersByCustomer).Methods("GET")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(staffOrAdmin)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")

	// Protected API routes - Balances
	balancesAPI := r.PathPrefix("/api/balances").Subrouter()
	balancesAPI.Use(staffOrAdmin)
	balancesAPI.HandleFunc("", balanceHandler.ListBalances).Methods("GET")
	balancesAPI.HandleFunc("/{customer_id}", balanceHandler.GetCustomerBalance).Methods("GET")

	// Protected API routes - Feedback (anyone signed-in submits; staff read)
	feedbackAPI := r.PathPrefix("/api/feedback").Subrouter()
	feedbackAPI.Use(authMiddleware.Authenticate)
	feedbackAPI.HandleFunc("", feedbackHandler.SubmitFeedback).Methods("POST")
	feedbackAPI.HandleFunc("", staffOrAdmin(http.HandlerFunc(feedbackHandler.ListFeedback)).ServeHTTP).Methods("GET")
	feedbackAPI.HandleFunc("/stats", staffOrAdmin(http.HandlerFunc(feedbackHandler.FeedbackStats)).ServeHTTP).Methods("GET")

	// Protected API routes - Reports (admin only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequireAdmin)
	reportsAPI.HandleFunc("/balances/csv", reportHandler.ExportBalancesCSV).Methods("GET")
	reportsAPI.HandleFunc("/balances/pdf", reportHandler.BalancesPDF).Methods("GET")
	reportsAPI.HandleFunc("/inventory/pdf", reportHandler.InventoryPDF).Methods("GET")
	reportsAPI.HandleFunc("/expenses/pdf", reportHandler.ExpensesPDF).Methods("GET")
	reportsAPI.HandleFunc("/{entity}/csv", reportHandler.ExportCSV).Methods("GET")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(staffOrAdmin)
	dashboardAPI.HandleFunc("", dashboardHandler.Summary).Methods("GET")

	// Protected API routes - System stats (admin only)
	systemAPI := r.PathPrefix("/api/system").Subrouter()
	systemAPI.Use(authMiddleware.RequireAdmin)
	systemAPI.HandleFunc("/stats", systemHandler.GetStats).Methods("GET")
	systemAPI.HandleFunc("/backup", backupHandler.TriggerBackup).Methods("POST")

	// Protected API routes - Online settlement
	razorpayAPI := r.PathPrefix("/api/razorpay").Subrouter()
	razorpayAPI.Use(authMiddleware.Authenticate)
	razorpayAPI.HandleFunc("/orders", razorpayHandler.CreateSettlementOrder).Methods("POST")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
