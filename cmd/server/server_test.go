package main

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"kuyumhesap/internal/rates"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, err = database.Exec(`
		CREATE TABLE saved_calculations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			results TEXT NOT NULL
		);
		CREATE TABLE settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			product_gram REAL NOT NULL,
			gold_price REAL NOT NULL,
			silver_price REAL NOT NULL,
			labor_milyem REAL NOT NULL,
			labor_usd REAL NOT NULL,
			shipping REAL NOT NULL,
			packaging REAL NOT NULL,
			service_fee REAL NOT NULL,
			e_tax_rate REAL NOT NULL,
			commission REAL NOT NULL,
			standard_profit REAL NOT NULL,
			lined_profit REAL NOT NULL,
			extra_cost REAL NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	return &server{db: database, rates: rates.NewClient("", "")}
}
