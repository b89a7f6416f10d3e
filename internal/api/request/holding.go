package request

// CreateHoldingRequest represents the request body for creating a holding.
// Class-specific fields are pointers; absent means not applicable.
type CreateHoldingRequest struct {
	Class            string   `json:"class"`
	SubClass         string   `json:"subClass"`
	Name             string   `json:"name"`
	Code             string   `json:"code"`
	AccountEntity    string   `json:"accountEntity"`
	AccountBank      string   `json:"accountBank"`
	Quantity         float64  `json:"quantity"`
	Price            float64  `json:"price"`
	OriginCurrency   string   `json:"originCurrency"`
	Factor           *float64 `json:"factor,omitempty"`
	MaturityDate     *string  `json:"maturityDate,omitempty"` // YYYY-MM-DD
	Ytw              *float64 `json:"ytw,omitempty"`
	PECompanyValue   *float64 `json:"peCompanyValue,omitempty"`
	PEHoldingPercent *float64 `json:"peHoldingPercentage,omitempty"`

	// AllowExisting opts into the add-existing-holding flow: the new record
	// joins the name group instead of being rejected as a duplicate.
	AllowExisting bool `json:"allowExisting,omitempty"`
}

// UpdateHoldingRequest represents a partial update to a holding. Only
// provided fields are applied; the lifecycle rules decide whether each
// change stays local or fans out to the name group.
type UpdateHoldingRequest struct {
	Class            *string  `json:"class,omitempty"`
	SubClass         *string  `json:"subClass,omitempty"`
	Name             *string  `json:"name,omitempty"`
	Code             *string  `json:"code,omitempty"`
	AccountEntity    *string  `json:"accountEntity,omitempty"`
	AccountBank      *string  `json:"accountBank,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	OriginCurrency   *string  `json:"originCurrency,omitempty"`
	Factor           *float64 `json:"factor,omitempty"`
	MaturityDate     *string  `json:"maturityDate,omitempty"`
	Ytw              *float64 `json:"ytw,omitempty"`
	PECompanyValue   *float64 `json:"peCompanyValue,omitempty"`
	PEHoldingPercent *float64 `json:"peHoldingPercentage,omitempty"`
}
