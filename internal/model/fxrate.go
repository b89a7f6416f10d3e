package model

import "time"

// FxRate holds the authoritative cross-rates for one currency: how many USD
// and how many ILS one unit of the currency buys. Cross-rates between two
// non-base currencies are always derived as a ratio through the ILS pivot,
// never fetched pairwise.
type FxRate struct {
	Currency    string    `json:"currency"`
	ToUSD       float64   `json:"toUsd"`
	ToILS       float64   `json:"toIls"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FxTable maps a currency code to its rates.
type FxTable map[string]FxRate
