package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/lifecycle"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// HoldingRepository provides data access methods for the holding table.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const holdingColumns = `
	id, class, sub_class, name, code, account_entity, account_bank, beneficiary,
	quantity, price, origin_currency, factor, maturity_date, ytw,
	pe_company_value, pe_holding_percentage, created_at, updated_at`

// GetHoldings retrieves holdings matching the filter. Zero-valued filter
// fields are ignored. Returns an empty slice when nothing matches.
func (r *HoldingRepository) GetHoldings(filter model.HoldingFilter) ([]model.Holding, error) {
	query := `SELECT` + holdingColumns + `
		FROM holding
		WHERE 1=1`

	var args []any

	if filter.Class != "" {
		query += ` AND class = ?`
		args = append(args, string(filter.Class))
	}
	if filter.Entity != "" {
		query += ` AND account_entity = ?`
		args = append(args, filter.Entity)
	}
	if filter.Bank != "" {
		query += ` AND account_bank = ?`
		args = append(args, filter.Bank)
	}
	if filter.Currency != "" {
		query += ` AND origin_currency = ?`
		args = append(args, filter.Currency)
	}
	if filter.Name != "" {
		query += ` AND name = ?`
		args = append(args, filter.Name)
	}

	query += ` ORDER BY class ASC, name ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHoldingOnID retrieves a single holding by its ID.
// Returns ErrHoldingNotFound when the ID does not exist.
func (r *HoldingRepository) GetHoldingOnID(holdingID string) (model.Holding, error) {
	query := `SELECT` + holdingColumns + `
		FROM holding
		WHERE id = ?`

	row := r.getQuerier().QueryRow(query, holdingID)
	h, err := scanHolding(row)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// GetNames retrieves every distinct non-empty holding name.
func (r *HoldingRepository) GetNames() ([]string, error) {
	rows, err := r.getQuerier().Query(`SELECT DISTINCT name FROM holding WHERE name != '' ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan holding name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding names: %w", err)
	}
	return names, nil
}

// InsertHolding inserts a new holding record.
func (r *HoldingRepository) InsertHolding(ctx context.Context, h model.Holding) error {
	query := `
		INSERT INTO holding (` + holdingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		h.ID,
		string(h.Class),
		h.SubClass,
		h.Name,
		h.Code,
		h.AccountEntity,
		h.AccountBank,
		h.Beneficiary,
		h.Quantity,
		h.Price,
		h.OriginCurrency,
		h.Factor,
		formatDate(h.MaturityDate),
		h.Ytw,
		h.PECompanyValue,
		h.PEHoldingPercent,
		h.CreatedAt.Format(time.RFC3339),
		h.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	return nil
}

// UpdateHolding replaces every mutable column of one holding record.
// created_at is immutable and deliberately left out.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, h model.Holding) error {
	query := `
		UPDATE holding
		SET class = ?, sub_class = ?, name = ?, code = ?, account_entity = ?,
			account_bank = ?, beneficiary = ?, quantity = ?, price = ?,
			origin_currency = ?, factor = ?, maturity_date = ?, ytw = ?,
			pe_company_value = ?, pe_holding_percentage = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		string(h.Class),
		h.SubClass,
		h.Name,
		h.Code,
		h.AccountEntity,
		h.AccountBank,
		h.Beneficiary,
		h.Quantity,
		h.Price,
		h.OriginCurrency,
		h.Factor,
		formatDate(h.MaturityDate),
		h.Ytw,
		h.PECompanyValue,
		h.PEHoldingPercent,
		h.UpdatedAt.Format(time.RFC3339),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// UpdateSharedFields propagates the changed shared fields of src to every
// holding carrying the same name, the edited record included. Only the
// columns named by the edit are written.
func (r *HoldingRepository) UpdateSharedFields(ctx context.Context, name string, src model.Holding, edit lifecycle.Edit) error {
	if len(edit.SharedFields) == 0 {
		return nil
	}

	query := `UPDATE holding SET updated_at = ?`
	args := []any{src.UpdatedAt.Format(time.RFC3339)}

	for _, f := range edit.SharedFields {
		column, value := sharedColumn(src, f)
		query += fmt.Sprintf(", %s = ?", column)
		args = append(args, value)
	}

	query += ` WHERE name = ?`
	args = append(args, name)

	if _, err := r.getQuerier().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update shared fields for %q: %w", name, err)
	}

	return nil
}

// DeleteHolding removes one holding by ID.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, holdingID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM holding WHERE id = ?`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// sharedColumn maps a lifecycle field to its column name and the value it
// takes from the source holding.
func sharedColumn(src model.Holding, f lifecycle.Field) (string, any) {
	switch f {
	case lifecycle.FieldName:
		return "name", src.Name
	case lifecycle.FieldClass:
		return "class", string(src.Class)
	case lifecycle.FieldSubClass:
		return "sub_class", src.SubClass
	case lifecycle.FieldCode:
		return "code", src.Code
	case lifecycle.FieldOriginCurrency:
		return "origin_currency", src.OriginCurrency
	case lifecycle.FieldPrice:
		return "price", src.Price
	case lifecycle.FieldFactor:
		return "factor", src.Factor
	case lifecycle.FieldMaturityDate:
		return "maturity_date", formatDate(src.MaturityDate)
	case lifecycle.FieldYtw:
		return "ytw", src.Ytw
	case lifecycle.FieldPECompanyValue:
		return "pe_company_value", src.PECompanyValue
	}
	// Account-specific fields never reach a shared update.
	return "", nil
}

// scanner abstracts sql.Row and sql.Rows for scanHolding.
type scanner interface {
	Scan(dest ...any) error
}

func scanHolding(row scanner) (model.Holding, error) {
	var h model.Holding
	var class string
	var code, maturityStr sql.NullString
	var factor, ytw, companyValue, holdingPct sql.NullFloat64
	var createdStr, updatedStr string

	err := row.Scan(
		&h.ID,
		&class,
		&h.SubClass,
		&h.Name,
		&code,
		&h.AccountEntity,
		&h.AccountBank,
		&h.Beneficiary,
		&h.Quantity,
		&h.Price,
		&h.OriginCurrency,
		&factor,
		&maturityStr,
		&ytw,
		&companyValue,
		&holdingPct,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, err
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}

	h.Class = refdata.AssetClass(class)
	if code.Valid {
		h.Code = code.String
	}
	if factor.Valid {
		h.Factor = &factor.Float64
	}
	if maturityStr.Valid && maturityStr.String != "" {
		maturity, err := ParseTime(maturityStr.String)
		if err != nil {
			return model.Holding{}, fmt.Errorf("failed to parse maturity date: %w", err)
		}
		h.MaturityDate = &maturity
	}
	if ytw.Valid {
		h.Ytw = &ytw.Float64
	}
	if companyValue.Valid {
		h.PECompanyValue = &companyValue.Float64
	}
	if holdingPct.Valid {
		h.PEHoldingPercent = &holdingPct.Float64
	}

	h.CreatedAt, err = ParseTime(createdStr)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	h.UpdatedAt, err = ParseTime(updatedStr)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return h, nil
}

// formatDate renders an optional date column value.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
