// Package projection compounds the holdings collection forward across the
// fixed year buckets {current, +1, +2, +3, later} under configurable
// growth-rate assumptions, with per-asset inclusion toggles and
// liquidation-year gating for Real Estate and Private Equity, and a
// cumulative spending drawdown consumed liquidity-first.
package projection

import (
	"math"

	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// BucketResult is the fixed-shape output for one projection bucket: one
// number per class bucket. PEPotential is the unrealized upside above the
// conservative factor, summed separately and never blended into the
// compounded totals.
type BucketResult struct {
	Bucket       model.Bucket `json:"bucket"`
	Cash         float64      `json:"cash"`
	FixedIncome  float64      `json:"fixedIncome"`
	PublicEquity float64      `json:"publicEquity"`
	Commodities  float64      `json:"commodities"`
	RealEstate   float64      `json:"realEstate"`
	PEFactored   float64      `json:"privateEquityFactored"`
	PEPotential  float64      `json:"privateEquityPotential"`

	// LiquidTotal sums every component except PEPotential.
	LiquidTotal float64 `json:"liquidTotal"`
}

// Project produces the time series over the fixed bucket set.
//
// Cash, Fixed Income, Public Equity and Commodities are included in every
// bucket at their compounded value for that offset: Cash never compounds,
// Fixed Income compounds at the value-weighted YTW of the collection, and
// equity/commodities at their configured annual IRR.
//
// Real Estate and Private Equity enter a bucket only when toggled on in the
// settings and the bucket has reached the asset's liquidation year; they are
// never part of the current bucket and their already-factored value is used
// as-is, with the pre-factor upside exposed as PEPotential.
//
// The spending drawdown subtracts the cumulative spend for the bucket's
// offset first from Cash, then from Fixed Income, floored at zero at each
// step. Equity, Real Estate and Private Equity are never drawn down.
func Project(holdings []model.ValuedHolding, settings model.ProjectionSettings) []BucketResult {
	fixedIncome := filterClass(holdings, refdata.ClassFixedIncome)
	ytw := aggregation.WeightedYtw(fixedIncome) * 100 // yield stored as fraction, rates are percent

	baseCash := sumDisplay(filterClass(holdings, refdata.ClassCash))
	baseFixedIncome := sumDisplay(fixedIncome)
	basePublicEquity := sumDisplay(filterClass(holdings, refdata.ClassPublicEquity))
	baseCommodities := sumDisplay(filterClass(holdings, refdata.ClassCommodities))

	results := make([]BucketResult, 0, len(model.Buckets))
	for _, bucket := range model.Buckets {
		years := bucket.YearsFromCurrent()

		r := BucketResult{
			Bucket:       bucket,
			Cash:         baseCash, // rate 0, never compounds
			FixedIncome:  compound(baseFixedIncome, ytw, years),
			PublicEquity: compound(basePublicEquity, settings.GrowthRates[refdata.ClassPublicEquity], years),
			Commodities:  compound(baseCommodities, settings.GrowthRates[refdata.ClassCommodities], years),
		}

		if bucket != model.BucketCurrent {
			for _, h := range holdings {
				if h.Class != refdata.ClassRealEstate && h.Class != refdata.ClassPrivateEquity {
					continue
				}
				if !includedInBucket(h, bucket, settings) {
					continue
				}
				switch h.Class {
				case refdata.ClassRealEstate:
					r.RealEstate += h.Valuation.DisplayValue
				case refdata.ClassPrivateEquity:
					r.PEFactored += h.Valuation.DisplayValue
					r.PEPotential += h.Valuation.PotentialValue - h.Valuation.DisplayValue
				}
			}

			r.Cash, r.FixedIncome = drawDown(r.Cash, r.FixedIncome, settings.YearlySpending*float64(years))
		}

		r.Cash = valuation.Round(r.Cash)
		r.FixedIncome = valuation.Round(r.FixedIncome)
		r.PublicEquity = valuation.Round(r.PublicEquity)
		r.Commodities = valuation.Round(r.Commodities)
		r.RealEstate = valuation.Round(r.RealEstate)
		r.PEFactored = valuation.Round(r.PEFactored)
		r.PEPotential = valuation.Round(r.PEPotential)
		r.LiquidTotal = valuation.Round(r.Cash + r.FixedIncome + r.PublicEquity + r.Commodities + r.RealEstate + r.PEFactored)

		results = append(results, r)
	}

	return results
}

// includedInBucket applies the liquidation-year gating for Real Estate and
// Private Equity: the asset must be toggled on, and the bucket must have
// reached its liquidation year. A "later" liquidation year matches only the
// "later" bucket.
func includedInBucket(h model.ValuedHolding, bucket model.Bucket, settings model.ProjectionSettings) bool {
	plan, ok := settings.Assets[h.Name]
	if !ok || !plan.Enabled {
		return false
	}
	if plan.LiquidationYear == model.BucketLater {
		return bucket == model.BucketLater
	}
	return bucket >= plan.LiquidationYear
}

// drawDown consumes a cumulative spend first from cash, then from fixed
// income, flooring each at zero.
func drawDown(cash, fixedIncome, spend float64) (float64, float64) {
	if spend <= 0 {
		return cash, fixedIncome
	}
	if spend <= cash {
		return cash - spend, fixedIncome
	}
	spend -= cash
	return 0, math.Max(0, fixedIncome-spend)
}

func compound(base, ratePercent float64, years int) float64 {
	return base * math.Pow(1+ratePercent/100, float64(years))
}

func filterClass(holdings []model.ValuedHolding, class refdata.AssetClass) []model.ValuedHolding {
	return lo.Filter(holdings, func(h model.ValuedHolding, _ int) bool {
		return h.Class == class
	})
}

func sumDisplay(holdings []model.ValuedHolding) float64 {
	return lo.SumBy(holdings, func(h model.ValuedHolding) float64 {
		return h.Valuation.DisplayValue
	})
}
