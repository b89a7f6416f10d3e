package model

import "time"

// Snapshot is an immutable, timestamped full copy of the holdings collection
// plus the FX table at that moment, with three pre-computed USD totals.
// Snapshots are created only by an explicit user save and never mutated.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	TotalLiquidUSD        float64 `json:"totalLiquidUsd"` // cash + fixed income + public equity + commodities
	TotalPrivateEquityUSD float64 `json:"totalPrivateEquityUsd"`
	TotalRealEstateUSD    float64 `json:"totalRealEstateUsd"`

	Holdings []Holding `json:"holdings"`
	Rates    FxTable   `json:"rates"`
}

// SnapshotListing is the list view of a snapshot: metadata and totals
// without the full holdings payload.
type SnapshotListing struct {
	ID                    string    `json:"id"`
	CreatedAt             time.Time `json:"createdAt"`
	TotalLiquidUSD        float64   `json:"totalLiquidUsd"`
	TotalPrivateEquityUSD float64   `json:"totalPrivateEquityUsd"`
	TotalRealEstateUSD    float64   `json:"totalRealEstateUsd"`
	HoldingCount          int       `json:"holdingCount"`
}
