// Package valuation converts a single holding into a displayable monetary
// value in a chosen reporting currency. It applies the class-specific rules:
// private-equity factoring, cash-equivalent passthrough, and FX cross-rates
// routed through the ILS pivot.
package valuation

import (
	"math"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// RoundingPrecision is the factor used to round monetary values to two
// decimal places.
const RoundingPrecision = 100.0

// Round rounds a monetary value to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}

// Rate returns the conversion rate from currency `from` to currency `to`,
// routed through the ILS pivot: rate = (from->ILS) / (to->ILS), or from->ILS
// when the target is ILS itself. Only ILS cross-rates are authoritative in
// the rate table, so USD is just another `from` under this rule.
//
// A currency missing from the table falls back to the identity rate 1 and
// the second return value is false. This fail-soft default means a missing
// or stale rate degrades precision instead of blocking rendering; it also
// silently distorts valuations for under-configured currencies, which is why
// callers surface the flag instead of hiding it.
func Rate(rates model.FxTable, from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}

	fromRate, fromOK := rates[from]
	if !fromOK || fromRate.ToILS == 0 {
		// No authoritative rate for the origin currency: display the
		// unconverted value rather than route a guess through the pivot.
		return 1, false
	}

	if to == refdata.BaseCurrency {
		return fromRate.ToILS, true
	}

	toRate, toOK := rates[to]
	if !toOK || toRate.ToILS == 0 {
		return 1, false
	}

	return fromRate.ToILS / toRate.ToILS, true
}

// DerivedPrice returns the per-unit price implied by a Private Equity
// ownership-stake valuation: company value x holding percentage / quantity.
// For holdings without an active derivation it returns the stored price.
func DerivedPrice(h model.Holding) float64 {
	if !h.HasDerivedPrice() {
		return h.Price
	}
	return *h.PECompanyValue * (*h.PEHoldingPercent / 100) / h.Quantity
}

// Value values one holding against the rate table in the target reporting
// currency.
//
// RawBaseValue is quantity x price for all classes except Private Equity and
// Real Estate, where the factor (default 1) is applied to estimate the
// realistically realizable worth. The full pre-factor paper value is kept in
// PotentialValue for projection use.
func Value(h model.Holding, rates model.FxTable, target string) model.Valuation {
	price := DerivedPrice(h)

	potential := h.Quantity * price
	raw := potential
	if h.Class == refdata.ClassPrivateEquity || h.Class == refdata.ClassRealEstate {
		raw = potential * h.FactorOrDefault()
	}

	rate, converted := Rate(rates, h.OriginCurrency, target)

	return model.Valuation{
		RawBaseValue:   raw,
		ConvertedValue: raw * rate,
		DisplayValue:   raw * rate,
		PotentialValue: potential * rate,
		Unconverted:    !converted,
	}
}

// ValueAll values every holding in the collection and pairs each with its
// valuation.
func ValueAll(holdings []model.Holding, rates model.FxTable, target string) []model.ValuedHolding {
	valued := make([]model.ValuedHolding, len(holdings))
	for i, h := range holdings {
		valued[i] = model.ValuedHolding{
			Holding:   h,
			Valuation: Value(h, rates, target),
		}
	}
	return valued
}
