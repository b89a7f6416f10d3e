package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the snapshot table.
// The holdings collection and the FX table are stored as JSON documents:
// snapshots are immutable full copies read back as a whole, never queried
// per-column.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// InsertSnapshot persists a new snapshot. Snapshots are never updated.
func (r *SnapshotRepository) InsertSnapshot(ctx context.Context, s model.Snapshot) error {
	holdingsJSON, err := json.Marshal(s.Holdings)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot holdings: %w", err)
	}
	ratesJSON, err := json.Marshal(s.Rates)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot rates: %w", err)
	}

	query := `
		INSERT INTO snapshot (id, created_at, total_liquid_usd, total_private_equity_usd, total_real_estate_usd, holdings_json, rates_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.CreatedAt.Format(time.RFC3339),
		s.TotalLiquidUSD,
		s.TotalPrivateEquityUSD,
		s.TotalRealEstateUSD,
		string(holdingsJSON),
		string(ratesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// GetSnapshots retrieves snapshot listings, newest first, without the
// holdings payload.
func (r *SnapshotRepository) GetSnapshots() ([]model.SnapshotListing, error) {
	query := `
		SELECT id, created_at, total_liquid_usd, total_private_equity_usd, total_real_estate_usd,
			json_array_length(holdings_json)
		FROM snapshot
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	listings := []model.SnapshotListing{}

	for rows.Next() {
		var l model.SnapshotListing
		var createdStr string

		err := rows.Scan(
			&l.ID,
			&createdStr,
			&l.TotalLiquidUSD,
			&l.TotalPrivateEquityUSD,
			&l.TotalRealEstateUSD,
			&l.HoldingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot table results: %w", err)
		}

		l.CreatedAt, err = ParseTime(createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		listings = append(listings, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return listings, nil
}

// GetSnapshotOnID retrieves one full snapshot, holdings payload included.
// Returns ErrSnapshotNotFound when the ID does not exist.
func (r *SnapshotRepository) GetSnapshotOnID(snapshotID string) (model.Snapshot, error) {
	query := `
		SELECT id, created_at, total_liquid_usd, total_private_equity_usd, total_real_estate_usd, holdings_json, rates_json
		FROM snapshot
		WHERE id = ?
	`

	var s model.Snapshot
	var createdStr, holdingsJSON, ratesJSON string

	err := r.db.QueryRow(query, snapshotID).Scan(
		&s.ID,
		&createdStr,
		&s.TotalLiquidUSD,
		&s.TotalPrivateEquityUSD,
		&s.TotalRealEstateUSD,
		&holdingsJSON,
		&ratesJSON,
	)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	s.CreatedAt, err = ParseTime(createdStr)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if err := json.Unmarshal([]byte(holdingsJSON), &s.Holdings); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot holdings: %w", err)
	}
	if err := json.Unmarshal([]byte(ratesJSON), &s.Rates); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot rates: %w", err)
	}

	return s, nil
}
