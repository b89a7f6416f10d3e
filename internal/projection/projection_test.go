package projection_test

import (
	"math"
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/projection"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

func valued(class refdata.AssetClass, name string, value float64) model.ValuedHolding {
	return model.ValuedHolding{
		Holding: model.Holding{Class: class, Name: name},
		Valuation: model.Valuation{
			RawBaseValue:   value,
			ConvertedValue: value,
			DisplayValue:   value,
			PotentialValue: value,
		},
	}
}

func bucketAt(t *testing.T, results []projection.BucketResult, b model.Bucket) projection.BucketResult {
	t.Helper()
	for _, r := range results {
		if r.Bucket == b {
			return r
		}
	}
	t.Fatalf("Bucket %s missing from results", b)
	return projection.BucketResult{}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

// TestProject_Compounding tests per-class compounding across buckets.
//
// WHY: Cash never compounds, equity compounds at its configured IRR, and
// Fixed Income compounds at the collection's weighted YTW.
func TestProject_Compounding(t *testing.T) {
	ytw := 0.05
	bond := valued(refdata.ClassFixedIncome, "Bond A", 1000)
	bond.Ytw = &ytw

	holdings := []model.ValuedHolding{
		valued(refdata.ClassCash, "Cash USD", 1000),
		valued(refdata.ClassPublicEquity, "World ETF", 1000),
		bond,
	}
	settings := model.ProjectionSettings{
		GrowthRates: map[refdata.AssetClass]float64{
			refdata.ClassPublicEquity: 7,
		},
	}

	results := projection.Project(holdings, settings)

	if len(results) != 5 {
		t.Fatalf("Expected 5 buckets, got %d", len(results))
	}

	current := bucketAt(t, results, model.BucketCurrent)
	if !almostEqual(current.Cash, 1000) || !almostEqual(current.PublicEquity, 1000) || !almostEqual(current.FixedIncome, 1000) {
		t.Errorf("Expected uncompounded current bucket, got %+v", current)
	}

	year2 := bucketAt(t, results, model.BucketYear2)
	if !almostEqual(year2.Cash, 1000) {
		t.Errorf("Cash must never compound, got %f", year2.Cash)
	}
	if !almostEqual(year2.PublicEquity, 1000*1.07*1.07) {
		t.Errorf("Expected equity compounded at 7%% for 2 years, got %f", year2.PublicEquity)
	}
	if !almostEqual(year2.FixedIncome, 1000*1.05*1.05) {
		t.Errorf("Expected fixed income compounded at weighted YTW, got %f", year2.FixedIncome)
	}
}

// TestProject_IlliquidGating tests the Real Estate / Private Equity
// inclusion rules.
//
// WHY: Illiquid assets enter the projection only when toggled on and only
// from their liquidation year onward; the current bucket never includes
// them, and a "later" liquidation year matches only the terminal bucket.
func TestProject_IlliquidGating(t *testing.T) {
	factor := 0.6
	pe := valued(refdata.ClassPrivateEquity, "Startup", 600)
	pe.Factor = &factor
	pe.Valuation.PotentialValue = 1000

	re := valued(refdata.ClassRealEstate, "Tel Aviv Apt", 2000)

	holdings := []model.ValuedHolding{pe, re}

	t.Run("excluded when not toggled on", func(t *testing.T) {
		results := projection.Project(holdings, model.ProjectionSettings{})

		for _, r := range results {
			if r.RealEstate != 0 || r.PEFactored != 0 || r.PEPotential != 0 {
				t.Errorf("Bucket %s must exclude untoggled assets: %+v", r.Bucket, r)
			}
		}
	})

	t.Run("included from liquidation year onward", func(t *testing.T) {
		settings := model.ProjectionSettings{
			Assets: map[string]model.AssetPlan{
				"Startup":      {Name: "Startup", Enabled: true, LiquidationYear: model.BucketYear2},
				"Tel Aviv Apt": {Name: "Tel Aviv Apt", Enabled: true, LiquidationYear: model.BucketLater},
			},
		}

		results := projection.Project(holdings, settings)

		if r := bucketAt(t, results, model.BucketCurrent); r.PEFactored != 0 || r.RealEstate != 0 {
			t.Errorf("Current bucket must never include illiquid assets: %+v", r)
		}
		if r := bucketAt(t, results, model.BucketYear1); r.PEFactored != 0 {
			t.Errorf("Year+1 precedes liquidation year, got %+v", r)
		}

		year2 := bucketAt(t, results, model.BucketYear2)
		if !almostEqual(year2.PEFactored, 600) {
			t.Errorf("Expected factored PE 600 at liquidation year, got %f", year2.PEFactored)
		}
		if !almostEqual(year2.PEPotential, 400) {
			t.Errorf("Expected potential upside 400, got %f", year2.PEPotential)
		}
		if year2.RealEstate != 0 {
			t.Errorf("'later' liquidation must not match year+2, got %f", year2.RealEstate)
		}

		year3 := bucketAt(t, results, model.BucketYear3)
		if !almostEqual(year3.PEFactored, 600) {
			t.Errorf("Expected PE to stay included after liquidation year, got %f", year3.PEFactored)
		}

		later := bucketAt(t, results, model.BucketLater)
		if !almostEqual(later.RealEstate, 2000) {
			t.Errorf("Expected real estate 2000 in terminal bucket, got %f", later.RealEstate)
		}
		if !almostEqual(later.LiquidTotal, 600+2000) {
			t.Errorf("Liquid total must exclude PE potential, got %f", later.LiquidTotal)
		}
	})
}

// TestProject_SpendingDrawdown tests the liquidity-ordered consumption.
//
// WHY: The cumulative spend comes first from Cash, then Fixed Income,
// floored at zero at each step, and never touches equity or illiquid assets.
func TestProject_SpendingDrawdown(t *testing.T) {
	holdings := []model.ValuedHolding{
		valued(refdata.ClassCash, "Cash USD", 80_000),
		valued(refdata.ClassFixedIncome, "Bond A", 200_000),
		valued(refdata.ClassPublicEquity, "World ETF", 500_000),
	}
	settings := model.ProjectionSettings{YearlySpending: 50_000}

	results := projection.Project(holdings, settings)

	t.Run("current bucket is never drawn down", func(t *testing.T) {
		current := bucketAt(t, results, model.BucketCurrent)
		if !almostEqual(current.Cash, 80_000) || !almostEqual(current.FixedIncome, 200_000) {
			t.Errorf("Expected untouched current bucket, got %+v", current)
		}
	})

	t.Run("cumulative spend spills from cash into fixed income", func(t *testing.T) {
		year2 := bucketAt(t, results, model.BucketYear2)
		// Cumulative spend 100k: cash 80k exhausted, 20k drawn from FI.
		if year2.Cash != 0 {
			t.Errorf("Expected cash exhausted, got %f", year2.Cash)
		}
		if !almostEqual(year2.FixedIncome, 180_000) {
			t.Errorf("Expected fixed income 180000, got %f", year2.FixedIncome)
		}
		if !almostEqual(year2.PublicEquity, 500_000) {
			t.Errorf("Equity must never be drawn down, got %f", year2.PublicEquity)
		}
	})

	t.Run("drawdown floors at zero", func(t *testing.T) {
		later := bucketAt(t, results, model.BucketLater)
		// Cumulative spend 200k against 80k cash + 200k FI: FI floored, not negative.
		if later.Cash != 0 || later.FixedIncome < 0 {
			t.Errorf("Expected non-negative balances, got cash=%f fi=%f", later.Cash, later.FixedIncome)
		}
	})
}
