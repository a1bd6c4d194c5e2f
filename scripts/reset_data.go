package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Wipes every ledger so a fresh test run starts from empty tables. The
// server recreates the bootstrap admin on next start.
func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Shop Data for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL SHOP DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all users (admin is recreated on next start)")
	fmt.Println("  - Delete all inventory items")
	fmt.Println("  - Delete all purchases and expenses")
	fmt.Println("  - Delete all orders and payments")
	fmt.Println("  - Delete all customer feedback")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	if getEnv("STORAGE_BACKEND", "csv") == "postgres" {
		resetPostgres()
	} else {
		resetCSV(getEnv("DATA_DIR", "data"))
	}
}

func resetCSV(dataDir string) {
	fmt.Println()
	fmt.Println("Resetting CSV data directory...")

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		log.Fatalf("Failed to read data dir %s: %v\n", dataDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		if err := os.Remove(filepath.Join(dataDir, entry.Name())); err != nil {
			log.Fatalf("Failed to remove %s: %v\n", entry.Name(), err)
		}
		fmt.Printf("  Removed %s\n", entry.Name())
	}

	fmt.Println()
	fmt.Println("Reset complete.")
}

func resetPostgres() {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "dailyshop")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"shop_feedback",
		"shop_payments",
		"shop_orders",
		"shop_expenses",
		"shop_inventory",
		"shop_users",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  Cleared %s\n", table)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Reset complete.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
