package aggregation

import (
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// LiquidityCategory is one row of the liquidity matrix.
type LiquidityCategory string

const (
	CategoryCash          LiquidityCategory = "Cash & Equivalents"
	CategoryPrivateFunds  LiquidityCategory = "Private Funds"
	CategoryBonds         LiquidityCategory = "Bonds"
	CategoryLiquidEquity  LiquidityCategory = "Liquid Equity"
	CategoryLimitedEquity LiquidityCategory = "Limited-Liquidity Equity"
	CategoryRealEstate    LiquidityCategory = "Real Estate"
	CategoryPrivateEquity LiquidityCategory = "Private Equity"
)

// LiquidityCategories lists the matrix rows in display order.
var LiquidityCategories = []LiquidityCategory{
	CategoryCash,
	CategoryLiquidEquity,
	CategoryLimitedEquity,
	CategoryBonds,
	CategoryPrivateFunds,
	CategoryRealEstate,
	CategoryPrivateEquity,
}

// Classify assigns a holding to exactly one liquidity category, in
// precedence order:
//
//  1. Cash class, or the Bank Deposit / Money Market sub-classes -> Cash.
//  2. Private Fund sub-class -> Private Funds.
//  3. Remaining Fixed Income -> Bonds.
//  4. Public Equity and Commodities -> Liquid Equity, or Limited-Liquidity
//     Equity when the asset name is in the limited set.
//  5. Real Estate and Private Equity -> their own categories.
//
// Holdings matching no rule are reported as unclassified (ok==false) and the
// matrix silently drops them. Dropped, not errored, is the documented
// policy: a new sub-class must be added to the taxonomy to appear.
func Classify(h model.Holding, limited model.LimitedLiquiditySet) (LiquidityCategory, bool) {
	switch {
	case h.Class == refdata.ClassCash,
		h.SubClass == refdata.SubClassBankDeposit,
		h.SubClass == refdata.SubClassMoneyMarket:
		return CategoryCash, true
	case h.SubClass == refdata.SubClassPrivateFund:
		return CategoryPrivateFunds, true
	case h.Class == refdata.ClassFixedIncome:
		return CategoryBonds, true
	case h.Class == refdata.ClassPublicEquity, h.Class == refdata.ClassCommodities:
		if limited[h.Name] {
			return CategoryLimitedEquity, true
		}
		return CategoryLiquidEquity, true
	case h.Class == refdata.ClassRealEstate:
		return CategoryRealEstate, true
	case h.Class == refdata.ClassPrivateEquity:
		return CategoryPrivateEquity, true
	}
	return "", false
}

// LiquidityMatrix is the 2-D matrix of totals: liquidity category rows
// crossed against beneficiary columns, with row totals, column totals, and a
// grand total.
type LiquidityMatrix struct {
	Categories    []LiquidityCategory                      `json:"categories"`
	Beneficiaries []string                                 `json:"beneficiaries"`
	Cells         map[LiquidityCategory]map[string]float64 `json:"cells"`
	RowTotals     map[LiquidityCategory]float64            `json:"rowTotals"`
	ColumnTotals  map[string]float64                       `json:"columnTotals"`
	GrandTotal    float64                                  `json:"grandTotal"`
}

// BuildLiquidityMatrix crosses the liquidity taxonomy against the
// beneficiary taxonomy. Every cell, row and column is present in the output
// even when zero, so the rendered table has a fixed shape.
func BuildLiquidityMatrix(holdings []model.ValuedHolding, limited model.LimitedLiquiditySet) LiquidityMatrix {
	m := LiquidityMatrix{
		Categories:    LiquidityCategories,
		Beneficiaries: refdata.Beneficiaries,
		Cells:         make(map[LiquidityCategory]map[string]float64, len(LiquidityCategories)),
		RowTotals:     make(map[LiquidityCategory]float64, len(LiquidityCategories)),
		ColumnTotals:  make(map[string]float64, len(refdata.Beneficiaries)),
	}

	for _, cat := range LiquidityCategories {
		m.Cells[cat] = make(map[string]float64, len(refdata.Beneficiaries))
		for _, b := range refdata.Beneficiaries {
			m.Cells[cat][b] = 0
		}
		m.RowTotals[cat] = 0
	}
	for _, b := range refdata.Beneficiaries {
		m.ColumnTotals[b] = 0
	}

	for _, h := range holdings {
		cat, ok := Classify(h.Holding, limited)
		if !ok {
			continue
		}
		beneficiary := refdata.BeneficiaryOf(h.AccountEntity)
		value := h.Valuation.DisplayValue

		m.Cells[cat][beneficiary] += value
		m.RowTotals[cat] += value
		m.ColumnTotals[beneficiary] += value
		m.GrandTotal += value
	}

	for cat := range m.Cells {
		for b := range m.Cells[cat] {
			m.Cells[cat][b] = valuation.Round(m.Cells[cat][b])
		}
		m.RowTotals[cat] = valuation.Round(m.RowTotals[cat])
	}
	for b := range m.ColumnTotals {
		m.ColumnTotals[b] = valuation.Round(m.ColumnTotals[b])
	}
	m.GrandTotal = valuation.Round(m.GrandTotal)

	return m
}
