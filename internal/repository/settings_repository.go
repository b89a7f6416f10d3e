package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// settingYearlySpending is the app_setting key for the projection's yearly
// spending amount in USD.
const settingYearlySpending = "yearly_spending_usd"

// SettingsRepository provides data access methods for the liquidity_flag,
// projection_asset, growth_rate and app_setting tables.
type SettingsRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) WithTx(tx *sql.Tx) *SettingsRepository {
	return &SettingsRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SettingsRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetLimitedLiquidity retrieves the limited-liquidity name set.
func (r *SettingsRepository) GetLimitedLiquidity() (model.LimitedLiquiditySet, error) {
	rows, err := r.getQuerier().Query(`SELECT asset_name FROM liquidity_flag`)
	if err != nil {
		return nil, fmt.Errorf("failed to query liquidity_flag table: %w", err)
	}
	defer rows.Close()

	set := model.LimitedLiquiditySet{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan liquidity_flag results: %w", err)
		}
		set[name] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liquidity_flag table: %w", err)
	}

	return set, nil
}

// ReplaceLimitedLiquidity replaces the limited-liquidity name set. The
// delete and inserts are not atomic on their own; callers run this under
// WithTx.
func (r *SettingsRepository) ReplaceLimitedLiquidity(ctx context.Context, names []string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM liquidity_flag`); err != nil {
		return fmt.Errorf("failed to clear liquidity_flag table: %w", err)
	}

	for _, name := range names {
		if _, err := r.getQuerier().ExecContext(ctx,
			`INSERT INTO liquidity_flag (asset_name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to insert liquidity_flag %q: %w", name, err)
		}
	}

	return nil
}

// GetProjectionSettings retrieves the full projection configuration.
// Missing rows degrade to defaults: no plans, no growth, zero spending.
func (r *SettingsRepository) GetProjectionSettings() (model.ProjectionSettings, error) {
	settings := model.ProjectionSettings{
		GrowthRates: map[refdata.AssetClass]float64{},
		Assets:      map[string]model.AssetPlan{},
	}

	rows, err := r.getQuerier().Query(`SELECT class, rate FROM growth_rate`)
	if err != nil {
		return settings, fmt.Errorf("failed to query growth_rate table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var class string
		var rate float64
		if err := rows.Scan(&class, &rate); err != nil {
			return settings, fmt.Errorf("failed to scan growth_rate results: %w", err)
		}
		settings.GrowthRates[refdata.AssetClass(class)] = rate
	}
	if err = rows.Err(); err != nil {
		return settings, fmt.Errorf("error iterating growth_rate table: %w", err)
	}

	assetRows, err := r.getQuerier().Query(`SELECT asset_name, enabled, liquidation_year FROM projection_asset`)
	if err != nil {
		return settings, fmt.Errorf("failed to query projection_asset table: %w", err)
	}
	defer assetRows.Close()

	for assetRows.Next() {
		var plan model.AssetPlan
		var yearStr string
		if err := assetRows.Scan(&plan.Name, &plan.Enabled, &yearStr); err != nil {
			return settings, fmt.Errorf("failed to scan projection_asset results: %w", err)
		}
		year, err := model.ParseBucket(yearStr)
		if err != nil {
			return settings, fmt.Errorf("failed to parse liquidation year: %w", err)
		}
		plan.LiquidationYear = year
		settings.Assets[plan.Name] = plan
	}
	if err = assetRows.Err(); err != nil {
		return settings, fmt.Errorf("error iterating projection_asset table: %w", err)
	}

	var spendingStr string
	err = r.getQuerier().QueryRow(
		`SELECT value FROM app_setting WHERE key = ?`, settingYearlySpending).Scan(&spendingStr)
	if err != nil && err != sql.ErrNoRows {
		return settings, fmt.Errorf("failed to query app_setting table: %w", err)
	}
	if err == nil {
		settings.YearlySpending, err = strconv.ParseFloat(spendingStr, 64)
		if err != nil {
			return settings, fmt.Errorf("failed to parse yearly spending: %w", err)
		}
	}

	return settings, nil
}

// ReplaceProjectionSettings replaces the full projection configuration.
// Spans four tables; callers run this under WithTx.
func (r *SettingsRepository) ReplaceProjectionSettings(ctx context.Context, settings model.ProjectionSettings) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM growth_rate`); err != nil {
		return fmt.Errorf("failed to clear growth_rate table: %w", err)
	}
	for class, rate := range settings.GrowthRates {
		if _, err := r.getQuerier().ExecContext(ctx,
			`INSERT INTO growth_rate (class, rate) VALUES (?, ?)`, string(class), rate); err != nil {
			return fmt.Errorf("failed to insert growth_rate for %s: %w", class, err)
		}
	}

	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM projection_asset`); err != nil {
		return fmt.Errorf("failed to clear projection_asset table: %w", err)
	}
	for _, plan := range settings.Assets {
		if _, err := r.getQuerier().ExecContext(ctx,
			`INSERT INTO projection_asset (asset_name, enabled, liquidation_year) VALUES (?, ?, ?)`,
			plan.Name, plan.Enabled, plan.LiquidationYear.String()); err != nil {
			return fmt.Errorf("failed to insert projection_asset %q: %w", plan.Name, err)
		}
	}

	query := `
		INSERT INTO app_setting (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	spending := strconv.FormatFloat(settings.YearlySpending, 'f', -1, 64)
	if _, err := r.getQuerier().ExecContext(ctx, query, settingYearlySpending, spending); err != nil {
		return fmt.Errorf("failed to upsert yearly spending: %w", err)
	}

	return nil
}
