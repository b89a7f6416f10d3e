package model

// Valuation is the displayable monetary value of one holding in a chosen
// reporting currency.
type Valuation struct {
	// RawBaseValue is quantity x price in the origin currency, with the
	// factor applied for Private Equity and Real Estate.
	RawBaseValue float64 `json:"rawBaseValue"`

	// ConvertedValue is RawBaseValue converted to the reporting currency.
	ConvertedValue float64 `json:"convertedValue"`

	// DisplayValue equals ConvertedValue. Kept as a distinct field because
	// some call sites intentionally use pre-factor or pre-conversion values
	// for "full potential" displays.
	DisplayValue float64 `json:"displayValue"`

	// PotentialValue is the full paper value quantity x price, pre-factor,
	// converted to the reporting currency.
	PotentialValue float64 `json:"potentialValue"`

	// Unconverted is set when the FX table had no entry for the origin
	// currency and the identity rate 1 was used instead.
	Unconverted bool `json:"unconverted,omitempty"`
}

// ValuedHolding pairs a holding with its valuation in the reporting
// currency. It is the unit the aggregation and projection engines work on.
type ValuedHolding struct {
	Holding
	Valuation Valuation `json:"valuation"`
}
