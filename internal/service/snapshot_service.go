package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/validation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// SnapshotService creates and reads point-in-time copies of the portfolio.
// Snapshots are only ever created by an explicit user action and are
// immutable once stored.
type SnapshotService struct {
	snapshotRepo *repository.SnapshotRepository
	holdingRepo  *repository.HoldingRepository
	fxRepo       *repository.FxRateRepository
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	holdingRepo *repository.HoldingRepository,
	fxRepo *repository.FxRateRepository,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		holdingRepo:  holdingRepo,
		fxRepo:       fxRepo,
	}
}

// CreateSnapshot captures the current holdings collection and FX table,
// pre-computes the three USD headline totals, and stores the whole thing as
// one immutable record.
//
// The totals are always in USD regardless of the configured display currency
// so the snapshot history stays comparable over time.
func (s *SnapshotService) CreateSnapshot(ctx context.Context) (model.Snapshot, error) {
	holdings, err := s.holdingRepo.GetHoldings(model.HoldingFilter{})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to retrieve holdings: %w", err)
	}
	rates, err := s.fxRepo.GetRates()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to retrieve fx rates: %w", err)
	}

	valued := valuation.ValueAll(holdings, rates, "USD")
	byClass := lo.GroupBy(valued, func(h model.ValuedHolding) refdata.AssetClass {
		return h.Class
	})
	classTotal := func(class refdata.AssetClass) float64 {
		return aggregation.TotalDisplayValue(byClass[class])
	}

	snapshot := model.Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		TotalLiquidUSD: valuation.Round(classTotal(refdata.ClassCash) +
			classTotal(refdata.ClassFixedIncome) +
			classTotal(refdata.ClassPublicEquity) +
			classTotal(refdata.ClassCommodities)),
		TotalPrivateEquityUSD: valuation.Round(classTotal(refdata.ClassPrivateEquity)),
		TotalRealEstateUSD:    valuation.Round(classTotal(refdata.ClassRealEstate)),
		Holdings:              holdings,
		Rates:                 rates,
	}

	if err := s.snapshotRepo.InsertSnapshot(ctx, snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to create snapshot: %w", err)
	}

	return snapshot, nil
}

// GetSnapshots lists stored snapshots newest first, totals only.
func (s *SnapshotService) GetSnapshots() ([]model.SnapshotListing, error) {
	return s.snapshotRepo.GetSnapshots()
}

// GetSnapshot retrieves one full snapshot including its holdings and rates.
func (s *SnapshotService) GetSnapshot(snapshotID string) (model.Snapshot, error) {
	if err := validation.ValidateUUID(snapshotID); err != nil {
		return model.Snapshot{}, err
	}
	return s.snapshotRepo.GetSnapshotOnID(snapshotID)
}
