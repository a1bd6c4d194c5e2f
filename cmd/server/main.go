package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"dailyshop-backend/internal/alerts"
	"dailyshop-backend/internal/auth"
	"dailyshop-backend/internal/cache"
	"dailyshop-backend/internal/config"
	"dailyshop-backend/internal/handlers"
	"dailyshop-backend/internal/health"
	h "dailyshop-backend/internal/http"
	"dailyshop-backend/internal/middleware"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/services"
	"dailyshop-backend/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func newStore(cfg *config.Config) (store.TableStore, error) {
	switch cfg.Storage.Backend {
	case "", "csv":
		log.Printf("[Storage] Using CSV files in %s", cfg.Storage.DataDir)
		return store.NewCSVStore(cfg.Storage.DataDir)

	case "postgres":
		connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		pg := store.NewPGStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.Printf("[Storage] Using PostgreSQL at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return pg, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	tableStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Redis cache is optional; everything recomputes on a miss.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard will recompute every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	healthChecker := health.NewHealthChecker(tableStore)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(tableStore)
	inventoryRepo := repositories.NewInventoryRepository(tableStore)
	transactionRepo := repositories.NewTransactionRepository(tableStore)
	orderRepo := repositories.NewOrderRepository(tableStore)
	paymentRepo := repositories.NewPaymentRepository(tableStore)
	feedbackRepo := repositories.NewFeedbackRepository(tableStore)

	// Low-stock alert hub
	hub := alerts.NewHub()
	go hub.Run()

	// Services
	totpService := services.NewTOTPService(userRepo, cfg.JWT.Issuer)
	userService := services.NewUserService(userRepo, jwtManager, totpService)
	ledgerService := services.NewLedgerService(inventoryRepo, hub)
	salesService := services.NewSalesService(inventoryRepo, transactionRepo, orderRepo, paymentRepo, ledgerService)
	balanceService := services.NewBalanceService(orderRepo, paymentRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	reportService := services.NewReportService(tableStore, inventoryRepo, transactionRepo, orderRepo, paymentRepo, balanceService)
	backupService := services.NewBackupService(cfg)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		balanceService,
		salesService,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}
	cancel()

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo)
	transactionHandler := handlers.NewTransactionHandler(salesService, transactionRepo)
	orderHandler := handlers.NewOrderHandler(salesService, orderRepo)
	paymentHandler := handlers.NewPaymentHandler(salesService, paymentRepo)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	systemHandler := handlers.NewSystemHandler()
	backupHandler := handlers.NewBackupHandler(backupService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		totpHandler,
		inventoryHandler,
		transactionHandler,
		orderHandler,
		paymentHandler,
		balanceHandler,
		feedbackHandler,
		reportHandler,
		dashboardHandler,
		systemHandler,
		backupHandler,
		razorpayHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.APILogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
