// Package aggregation computes collection-level views over valued holdings:
// percentage-of-total, grouping by arbitrary field combinations, the
// hierarchical class rollup, the liquidity matrix, and the value-weighted
// yield average. Every function is a pure, synchronous transformation of its
// inputs.
package aggregation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// GroupField identifies a holding field usable as a grouping key.
type GroupField string

const (
	FieldClass       GroupField = "class"
	FieldSubClass    GroupField = "sub_class"
	FieldName        GroupField = "name"
	FieldEntity      GroupField = "entity"
	FieldBank        GroupField = "bank"
	FieldCurrency    GroupField = "currency"
	FieldBeneficiary GroupField = "beneficiary"
)

// ParseGroupField parses a wire label into a GroupField.
func ParseGroupField(s string) (GroupField, error) {
	switch GroupField(s) {
	case FieldClass, FieldSubClass, FieldName, FieldEntity, FieldBank, FieldCurrency, FieldBeneficiary:
		return GroupField(s), nil
	}
	return "", fmt.Errorf("unknown group field %q", s)
}

func fieldValue(h model.ValuedHolding, f GroupField) string {
	switch f {
	case FieldClass:
		return string(h.Class)
	case FieldSubClass:
		return h.SubClass
	case FieldName:
		return h.Name
	case FieldEntity:
		return h.AccountEntity
	case FieldBank:
		return h.AccountBank
	case FieldCurrency:
		return h.OriginCurrency
	case FieldBeneficiary:
		return h.Beneficiary
	}
	return ""
}

// GroupOrder selects how groups are sorted.
type GroupOrder string

const (
	OrderByValue GroupOrder = "value" // descending total value
	OrderByKey   GroupOrder = "key"   // alphabetical by group key
)

// TotalDisplayValue sums the display values of the collection.
func TotalDisplayValue(holdings []model.ValuedHolding) float64 {
	return lo.SumBy(holdings, func(h model.ValuedHolding) float64 {
		return h.Valuation.DisplayValue
	})
}

// ScopedHolding is a valued holding annotated with its percentage of the
// filtered scope it was computed in.
type ScopedHolding struct {
	model.ValuedHolding
	PercentOfScope float64 `json:"percentOfScope"`
}

// PercentOfScope annotates every holding with its share of the filtered
// total, in percent. When the total is zero every percentage is zero; there
// is no division-by-zero fault.
func PercentOfScope(holdings []model.ValuedHolding) []ScopedHolding {
	total := TotalDisplayValue(holdings)

	return lo.Map(holdings, func(h model.ValuedHolding, _ int) ScopedHolding {
		pct := 0.0
		if total != 0 {
			pct = h.Valuation.DisplayValue / total * 100
		}
		return ScopedHolding{ValuedHolding: h, PercentOfScope: pct}
	})
}

// Group is one partition of the filtered collection.
type Group struct {
	Key     string  `json:"key"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // of the filtered total, not the global total
}

// GroupBy partitions holdings by the concatenation of the chosen fields and
// computes per-group total, count, and percentage of the filtered total.
func GroupBy(holdings []model.ValuedHolding, fields []GroupField, order GroupOrder) []Group {
	total := TotalDisplayValue(holdings)

	byKey := lo.GroupBy(holdings, func(h model.ValuedHolding) string {
		parts := lo.Map(fields, func(f GroupField, _ int) string {
			return fieldValue(h, f)
		})
		return strings.Join(parts, " / ")
	})

	groups := make([]Group, 0, len(byKey))
	for key, members := range byKey {
		sum := TotalDisplayValue(members)
		pct := 0.0
		if total != 0 {
			pct = sum / total * 100
		}
		groups = append(groups, Group{
			Key:     key,
			Total:   valuation.Round(sum),
			Count:   len(members),
			Percent: pct,
		})
	}

	switch order {
	case OrderByKey:
		sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	default:
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].Total != groups[j].Total {
				return groups[i].Total > groups[j].Total
			}
			return groups[i].Key < groups[j].Key
		})
	}

	return groups
}

// WeightedYtw computes the value-weighted average yield-to-worst over the
// Fixed Income holdings that carry one. Returns zero when no holding in the
// collection has a yield.
func WeightedYtw(holdings []model.ValuedHolding) float64 {
	var weighted, total float64
	for _, h := range holdings {
		if h.Ytw == nil {
			continue
		}
		weighted += *h.Ytw * h.Valuation.DisplayValue
		total += h.Valuation.DisplayValue
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}
