package model

import (
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// Holding represents one recorded unit of ownership of an asset by one
// entity at one bank, as stored in the holding table.
//
// Class-specific optional fields are pointers: nil means the field does not
// apply to this holding.
type Holding struct {
	ID             string             `json:"id"`
	Class          refdata.AssetClass `json:"class"`
	SubClass       string             `json:"subClass"`
	Name           string             `json:"name"`
	Code           string             `json:"code"` // identifying code (ticker, ISIN, deed number)
	AccountEntity  string             `json:"accountEntity"`
	AccountBank    string             `json:"accountBank"`
	Beneficiary    string             `json:"beneficiary"` // always recomputed from AccountEntity
	Quantity       float64            `json:"quantity"`
	Price          float64            `json:"price"` // per unit, in OriginCurrency; Cash is 1
	OriginCurrency string             `json:"originCurrency"`

	// Private Equity / Real Estate only.
	Factor *float64 `json:"factor,omitempty"` // 0-1 realizable fraction of paper value

	// Fixed Income only.
	MaturityDate *time.Time `json:"maturityDate,omitempty"`
	Ytw          *float64   `json:"ytw,omitempty"` // yield to worst

	// Private Equity only. When both are set, Price is derived from an
	// ownership-stake valuation and any manually set price is overwritten.
	PECompanyValue   *float64 `json:"peCompanyValue,omitempty"`
	PEHoldingPercent *float64 `json:"peHoldingPercentage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FactorOrDefault returns the holding's factor, defaulting to 1 when unset.
func (h Holding) FactorOrDefault() float64 {
	if h.Factor == nil {
		return 1
	}
	return *h.Factor
}

// HasDerivedPrice reports whether the holding's price is derived from a
// company-value / holding-percentage pair rather than set directly.
func (h Holding) HasDerivedPrice() bool {
	return h.Class == refdata.ClassPrivateEquity &&
		h.PECompanyValue != nil && h.PEHoldingPercent != nil && h.Quantity > 0
}

// HoldingFilter narrows holding queries. Zero values mean "no filter".
type HoldingFilter struct {
	Class    refdata.AssetClass
	Entity   string
	Bank     string
	Currency string
	Name     string
}

// NameGroup is the derived index entry for one shared-asset name: the ids of
// every holding carrying that name. Groups are recomputed on every read and
// never persisted.
type NameGroup struct {
	Name       string   `json:"name"`
	HoldingIDs []string `json:"holdingIds"`
}
