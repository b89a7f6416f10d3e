package aggregation_test

import (
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/aggregation"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// TestClassify tests the liquidity category precedence rules.
//
// WHY: Category assignment is a pure function of (class, sub-class, name)
// with a strict precedence order; a holding landing in the wrong bucket
// misstates the family's liquidity position.
func TestClassify(t *testing.T) {
	limited := model.LimitedLiquiditySet{"Locked Fund": true}

	cases := []struct {
		name     string
		holding  model.Holding
		expected aggregation.LiquidityCategory
	}{
		{"cash class", model.Holding{Class: refdata.ClassCash, SubClass: "USD", Name: "Cash USD"}, aggregation.CategoryCash},
		{"bank deposit beats bonds", model.Holding{Class: refdata.ClassFixedIncome, SubClass: refdata.SubClassBankDeposit, Name: "Leumi Deposit"}, aggregation.CategoryCash},
		{"money market beats bonds", model.Holding{Class: refdata.ClassFixedIncome, SubClass: refdata.SubClassMoneyMarket, Name: "MM Fund"}, aggregation.CategoryCash},
		{"private fund sub-class", model.Holding{Class: refdata.ClassPublicEquity, SubClass: refdata.SubClassPrivateFund, Name: "Hedge X"}, aggregation.CategoryPrivateFunds},
		{"remaining fixed income is bonds", model.Holding{Class: refdata.ClassFixedIncome, SubClass: "Corporate Bond", Name: "Bond A"}, aggregation.CategoryBonds},
		{"liquid equity", model.Holding{Class: refdata.ClassPublicEquity, SubClass: "Stock", Name: "Acme"}, aggregation.CategoryLiquidEquity},
		{"limited equity by name", model.Holding{Class: refdata.ClassPublicEquity, SubClass: "Stock", Name: "Locked Fund"}, aggregation.CategoryLimitedEquity},
		{"limited commodity by name", model.Holding{Class: refdata.ClassCommodities, SubClass: "Crypto", Name: "Locked Fund"}, aggregation.CategoryLimitedEquity},
		{"real estate", model.Holding{Class: refdata.ClassRealEstate, SubClass: "Residential", Name: "Tel Aviv Apt"}, aggregation.CategoryRealEstate},
		{"private equity", model.Holding{Class: refdata.ClassPrivateEquity, SubClass: "Direct Holding", Name: "Startup"}, aggregation.CategoryPrivateEquity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := aggregation.Classify(tc.holding, limited)
			if !ok {
				t.Fatalf("Expected %s to classify, got unclassified", tc.holding.Name)
			}
			if got != tc.expected {
				t.Errorf("Expected category %s, got %s", tc.expected, got)
			}
		})
	}

	t.Run("unknown class is unclassified", func(t *testing.T) {
		if _, ok := aggregation.Classify(model.Holding{Class: "Collectibles"}, nil); ok {
			t.Error("Expected unknown class to be unclassified")
		}
	})
}

// TestBuildLiquidityMatrix tests the category x beneficiary matrix totals.
//
// WHY: Row totals, column totals and the grand total must agree with the
// cells, unclassified holdings must be silently dropped, and the matrix must
// keep its fixed shape even when empty.
func TestBuildLiquidityMatrix(t *testing.T) {
	holdings := []model.ValuedHolding{
		valued(refdata.ClassCash, "USD", "Cash USD", "Avi", 1000),
		valued(refdata.ClassPublicEquity, "Stock", "Acme", "Avi", 500),
		valued(refdata.ClassPublicEquity, "Stock", "Acme", "Dana", 300),
		valued(refdata.ClassRealEstate, "Residential", "Tel Aviv Apt", "Avi & Dana", 2000),
		{Holding: model.Holding{Class: "Collectibles", Name: "Art"}, Valuation: model.Valuation{DisplayValue: 999}},
	}

	m := aggregation.BuildLiquidityMatrix(holdings, nil)

	if !almostEqual(m.GrandTotal, 3800) {
		t.Errorf("Expected grand total 3800 excluding unclassified, got %f", m.GrandTotal)
	}
	if !almostEqual(m.Cells[aggregation.CategoryLiquidEquity]["Avi"], 500) {
		t.Errorf("Expected 500 liquid equity for Avi, got %f", m.Cells[aggregation.CategoryLiquidEquity]["Avi"])
	}
	if !almostEqual(m.Cells[aggregation.CategoryRealEstate]["Joint"], 2000) {
		t.Errorf("Expected joint real estate 2000, got %f", m.Cells[aggregation.CategoryRealEstate]["Joint"])
	}

	var rowSum, colSum float64
	for _, total := range m.RowTotals {
		rowSum += total
	}
	for _, total := range m.ColumnTotals {
		colSum += total
	}
	if !almostEqual(rowSum, m.GrandTotal) || !almostEqual(colSum, m.GrandTotal) {
		t.Errorf("Row sum %f and column sum %f must equal grand total %f", rowSum, colSum, m.GrandTotal)
	}

	t.Run("empty collection keeps fixed shape", func(t *testing.T) {
		m := aggregation.BuildLiquidityMatrix(nil, nil)

		if len(m.Categories) != len(aggregation.LiquidityCategories) {
			t.Errorf("Expected all categories present, got %d", len(m.Categories))
		}
		if len(m.Cells) != len(aggregation.LiquidityCategories) {
			t.Errorf("Expected a row per category, got %d", len(m.Cells))
		}
		for _, b := range refdata.Beneficiaries {
			if m.ColumnTotals[b] != 0 {
				t.Errorf("Expected zero column total for %s", b)
			}
		}
		if m.GrandTotal != 0 {
			t.Errorf("Expected zero grand total, got %f", m.GrandTotal)
		}
	})
}
