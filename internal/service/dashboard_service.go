package service

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// DashboardService produces the read-side views: valued holdings, the
// summary, ad-hoc groupings, the class rollup, the liquidity matrix, and the
// fixed income yield figure. All views are computed from current holdings and
// the stored FX table on every call.
type DashboardService struct {
	holdingRepo     *repository.HoldingRepository
	fxRepo          *repository.FxRateRepository
	settingsRepo    *repository.SettingsRepository
	displayCurrency string
}

// NewDashboardService creates a new DashboardService with the provided dependencies.
func NewDashboardService(
	holdingRepo *repository.HoldingRepository,
	fxRepo *repository.FxRateRepository,
	settingsRepo *repository.SettingsRepository,
	displayCurrency string,
) *DashboardService {
	return &DashboardService{
		holdingRepo:     holdingRepo,
		fxRepo:          fxRepo,
		settingsRepo:    settingsRepo,
		displayCurrency: displayCurrency,
	}
}

// ValuedHoldings loads holdings matching the filter and values each against
// the stored FX table in the display currency.
//
// With no FX table at all, every value is reported as zero rather than
// pretending unconverted origin amounts are comparable. Each holding is still
// listed, flagged unconverted.
func (s *DashboardService) ValuedHoldings(filter model.HoldingFilter) ([]model.ValuedHolding, error) {
	holdings, err := s.holdingRepo.GetHoldings(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve holdings: %w", err)
	}

	rates, err := s.fxRepo.GetRates()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve fx rates: %w", err)
	}

	valued := valuation.ValueAll(holdings, rates, s.displayCurrency)
	if len(rates) == 0 {
		for i := range valued {
			valued[i].Valuation = model.Valuation{Unconverted: true}
		}
	}
	return valued, nil
}

// ClassSummary is the summary line for one asset class.
type ClassSummary struct {
	Class   refdata.AssetClass `json:"class"`
	Total   float64            `json:"total"`
	Percent float64            `json:"percent"`
	Count   int                `json:"count"`
}

// Summary is the headline dashboard view: the portfolio total with its
// per-class breakdown.
type Summary struct {
	Currency         string         `json:"currency"`
	Total            float64        `json:"total"`
	Classes          []ClassSummary `json:"classes"`
	HoldingCount     int            `json:"holdingCount"`
	UnconvertedCount int            `json:"unconvertedCount"`
	RatesAsOf        *time.Time     `json:"ratesAsOf,omitempty"`
}

// GetSummary computes the headline totals across all holdings.
func (s *DashboardService) GetSummary() (Summary, error) {
	valued, err := s.ValuedHoldings(model.HoldingFilter{})
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Currency:     s.displayCurrency,
		Total:        valuation.Round(aggregation.TotalDisplayValue(valued)),
		HoldingCount: len(valued),
		UnconvertedCount: lo.CountBy(valued, func(h model.ValuedHolding) bool {
			return h.Valuation.Unconverted
		}),
	}

	byClass := lo.GroupBy(valued, func(h model.ValuedHolding) refdata.AssetClass {
		return h.Class
	})
	for _, class := range refdata.Classes {
		members, ok := byClass[class]
		if !ok {
			continue
		}
		total := aggregation.TotalDisplayValue(members)
		percent := 0.0
		if summary.Total != 0 {
			percent = valuation.Round(total / summary.Total * 100)
		}
		summary.Classes = append(summary.Classes, ClassSummary{
			Class:   class,
			Total:   valuation.Round(total),
			Percent: percent,
			Count:   len(members),
		})
	}

	if asOf, err := s.ratesAsOf(); err == nil && asOf != nil {
		summary.RatesAsOf = asOf
	}

	return summary, nil
}

// GetGroups groups all holdings by the requested fields and returns one
// aggregate per group, ordered as requested.
func (s *DashboardService) GetGroups(fields []aggregation.GroupField, order aggregation.GroupOrder) ([]aggregation.Group, error) {
	valued, err := s.ValuedHoldings(model.HoldingFilter{})
	if err != nil {
		return nil, err
	}
	return aggregation.GroupBy(valued, fields, order), nil
}

// GetRollup builds the three-level class, sub-class, asset hierarchy over all
// holdings.
func (s *DashboardService) GetRollup() ([]aggregation.ClassNode, error) {
	valued, err := s.ValuedHoldings(model.HoldingFilter{})
	if err != nil {
		return nil, err
	}
	return aggregation.Rollup(valued), nil
}

// GetLiquidityMatrix builds the liquidity category by beneficiary matrix over
// all holdings, using the stored limited-liquidity name set.
func (s *DashboardService) GetLiquidityMatrix() (aggregation.LiquidityMatrix, error) {
	valued, err := s.ValuedHoldings(model.HoldingFilter{})
	if err != nil {
		return aggregation.LiquidityMatrix{}, err
	}
	limited, err := s.settingsRepo.GetLimitedLiquidity()
	if err != nil {
		return aggregation.LiquidityMatrix{}, fmt.Errorf("failed to retrieve liquidity settings: %w", err)
	}
	return aggregation.BuildLiquidityMatrix(valued, limited), nil
}

// YieldSummary is the fixed income yield view: the value-weighted yield to
// worst over the positions that carry one.
type YieldSummary struct {
	WeightedYtw   float64 `json:"weightedYtw"`
	PositionCount int     `json:"positionCount"`
	TotalValue    float64 `json:"totalValue"`
}

// GetYield computes the weighted yield to worst across fixed income holdings.
func (s *DashboardService) GetYield() (YieldSummary, error) {
	valued, err := s.ValuedHoldings(model.HoldingFilter{Class: refdata.ClassFixedIncome})
	if err != nil {
		return YieldSummary{}, err
	}

	withYtw := lo.Filter(valued, func(h model.ValuedHolding, _ int) bool {
		return h.Ytw != nil
	})

	return YieldSummary{
		WeightedYtw:   aggregation.WeightedYtw(valued),
		PositionCount: len(withYtw),
		TotalValue:    valuation.Round(aggregation.TotalDisplayValue(withYtw)),
	}, nil
}

// ratesAsOf returns the most recent update time across the rate table, or
// nil when no rates are stored.
func (s *DashboardService) ratesAsOf() (*time.Time, error) {
	rates, err := s.fxRepo.GetRates()
	if err != nil {
		return nil, err
	}
	var latest time.Time
	for _, rate := range rates {
		if rate.LastUpdated.After(latest) {
			latest = rate.LastUpdated
		}
	}
	if latest.IsZero() {
		return nil, nil
	}
	return &latest, nil
}
