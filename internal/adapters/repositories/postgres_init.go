package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		supplier_id TEXT NOT NULL,
		status TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		total_amount DOUBLE PRECISION NOT NULL CHECK (total_amount >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		delivery_window TEXT,
		priority INTEGER
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status_supplier
	ON orders(status, supplier_id);
	`

	statements := []string{
		createOrdersQuery,
		createStatusIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OrderItemSeed struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

type OrderSeed struct {
	OrderID        string          `json:"order_id"`
	VendorID       string          `json:"vendor_id"`
	SupplierID     string          `json:"supplier_id"`
	Status         string          `json:"status"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	Items          []OrderItemSeed `json:"items"`
	TotalAmount    float64         `json:"total_amount"`
	CreatedAt      *time.Time      `json:"created_at"`
	DeliveryWindow string          `json:"delivery_window"`
	Priority       int             `json:"priority"`
}

// Populate the database with order data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed orders: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.OrderID) == "" {
			return fmt.Errorf("seed orders: item at index %d: order_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.VendorID) == "" {
			return fmt.Errorf("seed orders: order %q: vendor_id cannot be empty", item.OrderID)
		}
		if item.TotalAmount < 0 {
			return fmt.Errorf("seed orders: order %q: total_amount cannot be negative", item.OrderID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT INTO orders (
		order_id, vendor_id, supplier_id, status,
		lat, lng, items, total_amount,
		created_at, delivery_window, priority
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (order_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range data {
		itemsJSON, err := json.Marshal(item.Items)
		if err != nil {
			return fmt.Errorf("seed orders: order %q: marshal items: %w", item.OrderID, err)
		}

		createdAt := time.Now()
		if item.CreatedAt != nil {
			createdAt = *item.CreatedAt
		}

		priority := item.Priority
		if priority == 0 {
			priority = 1
		}

		_, err = stmt.Exec(
			item.OrderID, item.VendorID, item.SupplierID, item.Status,
			item.Lat, item.Lng, itemsJSON, item.TotalAmount,
			createdAt, item.DeliveryWindow, priority,
		)
		if err != nil {
			return fmt.Errorf("seed orders: insert order %q: %w", item.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
