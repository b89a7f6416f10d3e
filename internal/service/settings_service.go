package service

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
)

// SettingsService manages the limited-liquidity name set.
type SettingsService struct {
	db           *sql.DB
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService with the provided dependencies.
func NewSettingsService(db *sql.DB, settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		db:           db,
		settingsRepo: settingsRepo,
	}
}

// GetLimitedLiquidity returns the names currently marked limited-liquidity,
// sorted for stable output.
func (s *SettingsService) GetLimitedLiquidity() ([]string, error) {
	set, err := s.settingsRepo.GetLimitedLiquidity()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve liquidity settings: %w", err)
	}
	names := lo.Keys(set)
	slices.Sort(names)
	return names, nil
}

// UpdateLimitedLiquidity replaces the limited-liquidity name set. Duplicate
// and empty names are dropped. The replacement runs in one transaction so a
// failed write never leaves the set half-cleared.
func (s *SettingsService) UpdateLimitedLiquidity(ctx context.Context, names []string) ([]string, error) {
	cleaned := lo.Uniq(lo.Filter(names, func(name string, _ int) bool {
		return name != ""
	}))
	slices.Sort(cleaned)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.settingsRepo.WithTx(tx).ReplaceLimitedLiquidity(ctx, cleaned); err != nil {
		return nil, fmt.Errorf("failed to store liquidity settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit liquidity settings: %w", err)
	}
	return cleaned, nil
}

// LimitedLiquiditySet returns the set form used by the liquidity classifier.
func (s *SettingsService) LimitedLiquiditySet() (model.LimitedLiquiditySet, error) {
	return s.settingsRepo.GetLimitedLiquidity()
}
