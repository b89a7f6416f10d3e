package request

// LoginRequest carries the shared dashboard password.
type LoginRequest struct {
	Password string `json:"password"`
}

// UpdateProjectionSettingsRequest replaces the projection configuration.
type UpdateProjectionSettingsRequest struct {
	GrowthRates    map[string]float64 `json:"growthRates"`    // class -> annual IRR percent
	YearlySpending float64            `json:"yearlySpending"` // USD
	Assets         []AssetPlanRequest `json:"assets"`
}

// AssetPlanRequest is the projection plan for one Real Estate / Private
// Equity asset, keyed by name.
type AssetPlanRequest struct {
	Name            string `json:"name"`
	Enabled         bool   `json:"enabled"`
	LiquidationYear string `json:"liquidationYear"` // year+1 | year+2 | year+3 | later
}

// UpdateLiquidityRequest replaces the limited-liquidity name set.
type UpdateLiquidityRequest struct {
	Names []string `json:"names"`
}
