package model

import (
	"fmt"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// Bucket identifies one column of the projection horizon: the current year,
// each of the next three years, or the terminal catch-all "later" bucket.
type Bucket int

const (
	BucketCurrent Bucket = iota
	BucketYear1
	BucketYear2
	BucketYear3
	BucketLater
)

// Buckets lists the projection buckets in horizon order.
var Buckets = []Bucket{BucketCurrent, BucketYear1, BucketYear2, BucketYear3, BucketLater}

// YearsFromCurrent returns the compounding offset for the bucket. The
// terminal bucket sits one year past the last explicit year.
func (b Bucket) YearsFromCurrent() int {
	if b == BucketLater {
		return int(BucketYear3) + 1
	}
	return int(b)
}

// String returns the wire label for the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketCurrent:
		return "current"
	case BucketYear1:
		return "year+1"
	case BucketYear2:
		return "year+2"
	case BucketYear3:
		return "year+3"
	case BucketLater:
		return "later"
	}
	return fmt.Sprintf("bucket(%d)", int(b))
}

// ParseBucket parses a wire label back into a Bucket.
func ParseBucket(s string) (Bucket, error) {
	for _, b := range Buckets {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bucket %q", s)
}

// MarshalText implements encoding.TextMarshaler so buckets serialize as
// their wire labels in JSON maps and fields.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// AssetPlan is the per-asset projection setting for a Real Estate or Private
// Equity holding, keyed by asset name (not id).
type AssetPlan struct {
	Name            string `json:"name"`
	Enabled         bool   `json:"enabled"`
	LiquidationYear Bucket `json:"liquidationYear"`
}

// ProjectionSettings is the full projection configuration: per-class annual
// growth rates in percent, the yearly spending amount in USD, and the
// per-asset inclusion plans.
type ProjectionSettings struct {
	GrowthRates    map[refdata.AssetClass]float64 `json:"growthRates"`
	YearlySpending float64                        `json:"yearlySpending"`
	Assets         map[string]AssetPlan           `json:"assets"`
}

// LimitedLiquiditySet is the set of equity/commodity asset names explicitly
// marked as illiquid, keyed by asset name.
type LimitedLiquiditySet map[string]bool
