// Package testutil provides shared test infrastructure: an in-memory
// database with the production schema, fluent builders for test holdings,
// and pre-wired service constructors.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Holding table
		CREATE TABLE IF NOT EXISTS holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			class VARCHAR(20) NOT NULL,
			sub_class VARCHAR(30) NOT NULL,
			name VARCHAR(100) NOT NULL,
			code VARCHAR(30),
			account_entity VARCHAR(50) NOT NULL,
			account_bank VARCHAR(50) NOT NULL,
			beneficiary VARCHAR(50) NOT NULL,
			quantity FLOAT NOT NULL,
			price FLOAT NOT NULL,
			origin_currency VARCHAR(3) NOT NULL,
			factor FLOAT,
			maturity_date DATE,
			ytw FLOAT,
			pe_company_value FLOAT,
			pe_holding_percentage FLOAT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_holding_name ON holding(name);
		CREATE INDEX IF NOT EXISTS idx_holding_class ON holding(class);

		-- FX rate table
		CREATE TABLE IF NOT EXISTS fx_rate (
			currency VARCHAR(3) NOT NULL PRIMARY KEY,
			to_usd FLOAT NOT NULL,
			to_ils FLOAT NOT NULL,
			last_updated DATETIME NOT NULL
		);

		-- Portfolio snapshot table
		CREATE TABLE IF NOT EXISTS snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			total_liquid_usd FLOAT NOT NULL,
			total_private_equity_usd FLOAT NOT NULL,
			total_real_estate_usd FLOAT NOT NULL,
			holdings_json TEXT NOT NULL,
			rates_json TEXT NOT NULL
		);

		-- Limited-liquidity markers
		CREATE TABLE IF NOT EXISTS liquidity_flag (
			asset_name VARCHAR(100) NOT NULL PRIMARY KEY
		);

		-- Per-asset projection plans
		CREATE TABLE IF NOT EXISTS projection_asset (
			asset_name VARCHAR(100) NOT NULL PRIMARY KEY,
			enabled BOOLEAN NOT NULL DEFAULT 0,
			liquidation_year VARCHAR(10) NOT NULL DEFAULT 'later'
		);

		-- Per-class growth rates
		CREATE TABLE IF NOT EXISTS growth_rate (
			class VARCHAR(20) NOT NULL PRIMARY KEY,
			rate FLOAT NOT NULL
		);

		-- Scalar settings
		CREATE TABLE IF NOT EXISTS app_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables, for reusing one database across tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"holding",
		"fx_rate",
		"snapshot",
		"liquidity_flag",
		"projection_asset",
		"growth_rate",
		"app_setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	if err := db.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
