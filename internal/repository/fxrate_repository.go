package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
)

// FxRateRepository provides data access methods for the fx_rate table.
type FxRateRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

func (r *FxRateRepository) WithTx(tx *sql.Tx) *FxRateRepository {
	return &FxRateRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *FxRateRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetRates retrieves the full rate table. An empty table is returned as an
// empty map, not an error; valuation degrades to identity rates.
func (r *FxRateRepository) GetRates() (model.FxTable, error) {
	rows, err := r.getQuerier().Query(`SELECT currency, to_usd, to_ils, last_updated FROM fx_rate`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fx_rate table: %w", err)
	}
	defer rows.Close()

	rates := model.FxTable{}

	for rows.Next() {
		var rate model.FxRate
		var updatedStr string

		if err := rows.Scan(&rate.Currency, &rate.ToUSD, &rate.ToILS, &updatedStr); err != nil {
			return nil, fmt.Errorf("failed to scan fx_rate table results: %w", err)
		}

		rate.LastUpdated, err = ParseTime(updatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_updated: %w", err)
		}

		rates[rate.Currency] = rate
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fx_rate table: %w", err)
	}

	return rates, nil
}

// GetRate retrieves the rate record for one currency.
// Returns ErrFxRateNotFound when the currency has no record.
func (r *FxRateRepository) GetRate(currency string) (model.FxRate, error) {
	var rate model.FxRate
	var updatedStr string

	err := r.getQuerier().QueryRow(
		`SELECT currency, to_usd, to_ils, last_updated FROM fx_rate WHERE currency = ?`,
		currency,
	).Scan(&rate.Currency, &rate.ToUSD, &rate.ToILS, &updatedStr)
	if err == sql.ErrNoRows {
		return model.FxRate{}, apperrors.ErrFxRateNotFound
	}
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to query fx_rate table: %w", err)
	}

	rate.LastUpdated, err = ParseTime(updatedStr)
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to parse last_updated: %w", err)
	}

	return rate, nil
}

// UpsertRate inserts or replaces the rate record for a currency, keyed on
// the currency code.
func (r *FxRateRepository) UpsertRate(ctx context.Context, rate model.FxRate) error {
	query := `
		INSERT INTO fx_rate (currency, to_usd, to_ils, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(currency) DO UPDATE SET
			to_usd = excluded.to_usd,
			to_ils = excluded.to_ils,
			last_updated = excluded.last_updated
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		rate.Currency,
		rate.ToUSD,
		rate.ToILS,
		rate.LastUpdated.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fx_rate: %w", err)
	}

	return nil
}
