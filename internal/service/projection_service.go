package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/projection"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/validation"
)

// ProjectionService computes the forward-looking bucket view and manages its
// settings: per-class growth rates, yearly spending, and the per-asset
// liquidation plan.
type ProjectionService struct {
	db           *sql.DB
	dashboard    *DashboardService
	settingsRepo *repository.SettingsRepository
}

// NewProjectionService creates a new ProjectionService with the provided dependencies.
func NewProjectionService(db *sql.DB, dashboard *DashboardService, settingsRepo *repository.SettingsRepository) *ProjectionService {
	return &ProjectionService{
		db:           db,
		dashboard:    dashboard,
		settingsRepo: settingsRepo,
	}
}

// Projection is the full bucket view plus the settings it was computed with,
// so the client can render the assumptions next to the numbers.
type Projection struct {
	Buckets  []projection.BucketResult `json:"buckets"`
	Settings model.ProjectionSettings  `json:"settings"`
}

// GetProjection values all holdings and projects them across the buckets
// using the stored settings.
func (s *ProjectionService) GetProjection() (Projection, error) {
	valued, err := s.dashboard.ValuedHoldings(model.HoldingFilter{})
	if err != nil {
		return Projection{}, err
	}
	settings, err := s.settingsRepo.GetProjectionSettings()
	if err != nil {
		return Projection{}, fmt.Errorf("failed to retrieve projection settings: %w", err)
	}

	return Projection{
		Buckets:  projection.Project(valued, settings),
		Settings: settings,
	}, nil
}

// GetSettings returns the stored projection settings.
func (s *ProjectionService) GetSettings() (model.ProjectionSettings, error) {
	return s.settingsRepo.GetProjectionSettings()
}

// UpdateSettings validates and replaces the projection settings. The
// replacement spans four tables, so it runs in one transaction and either
// lands whole or not at all.
func (s *ProjectionService) UpdateSettings(ctx context.Context, req request.UpdateProjectionSettingsRequest) (model.ProjectionSettings, error) {
	settings, err := settingsFromRequest(req)
	if err != nil {
		return model.ProjectionSettings{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ProjectionSettings{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.settingsRepo.WithTx(tx).ReplaceProjectionSettings(ctx, settings); err != nil {
		return model.ProjectionSettings{}, fmt.Errorf("failed to store projection settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.ProjectionSettings{}, fmt.Errorf("failed to commit projection settings: %w", err)
	}
	return settings, nil
}

// settingsFromRequest builds validated settings from an update request.
func settingsFromRequest(req request.UpdateProjectionSettingsRequest) (model.ProjectionSettings, error) {
	errors := make(map[string]string)

	if req.YearlySpending < 0 {
		errors["yearlySpending"] = "yearly spending cannot be negative"
	}

	growth := make(map[refdata.AssetClass]float64, len(req.GrowthRates))
	for class, rate := range req.GrowthRates {
		assetClass := refdata.AssetClass(class)
		if !refdata.ValidClass(assetClass) {
			errors["growthRates"] = fmt.Sprintf("unknown asset class %q", class)
			continue
		}
		growth[assetClass] = rate
	}

	assets := make(map[string]model.AssetPlan, len(req.Assets))
	for _, plan := range req.Assets {
		if plan.Name == "" {
			errors["assets"] = "asset plan name is required"
			continue
		}
		bucket, err := model.ParseBucket(plan.LiquidationYear)
		if err != nil {
			errors["assets"] = fmt.Sprintf("%s: invalid liquidation year %q", plan.Name, plan.LiquidationYear)
			continue
		}
		assets[plan.Name] = model.AssetPlan{
			Name:            plan.Name,
			Enabled:         plan.Enabled,
			LiquidationYear: bucket,
		}
	}

	if len(errors) > 0 {
		return model.ProjectionSettings{}, &validation.Error{Fields: errors}
	}

	return model.ProjectionSettings{
		GrowthRates:    growth,
		YearlySpending: req.YearlySpending,
		Assets:         assets,
	}, nil
}
