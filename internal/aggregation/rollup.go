package aggregation

import (
	"sort"

	"github.com/samber/lo"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// AssetNode is the leaf of the rollup: one asset name with its total value.
type AssetNode struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// SubClassNode groups the assets of one sub-class.
type SubClassNode struct {
	SubClass string      `json:"subClass"`
	Total    float64     `json:"total"`
	Assets   []AssetNode `json:"assets"`
}

// ClassNode groups the sub-classes of one asset class. Its total is the sum
// of its children, which in turn sum their own children.
type ClassNode struct {
	Class      string         `json:"class"`
	Total      float64        `json:"total"`
	SubClasses []SubClassNode `json:"subClasses"`
}

// Rollup builds the strict three-level Class -> Sub-class -> Asset-name
// hierarchy. Children are sorted by descending value at every level. An
// empty input (or a collection valued against an empty FX table) yields an
// empty, all-zero result rather than an error.
func Rollup(holdings []model.ValuedHolding) []ClassNode {
	byClass := lo.GroupBy(holdings, func(h model.ValuedHolding) string {
		return string(h.Class)
	})

	classes := make([]ClassNode, 0, len(byClass))
	for class, classMembers := range byClass {
		bySubClass := lo.GroupBy(classMembers, func(h model.ValuedHolding) string {
			return h.SubClass
		})

		subClasses := make([]SubClassNode, 0, len(bySubClass))
		for subClass, subMembers := range bySubClass {
			byName := lo.GroupBy(subMembers, func(h model.ValuedHolding) string {
				return h.Name
			})

			assets := make([]AssetNode, 0, len(byName))
			for name, nameMembers := range byName {
				assets = append(assets, AssetNode{
					Name:  name,
					Total: valuation.Round(TotalDisplayValue(nameMembers)),
					Count: len(nameMembers),
				})
			}
			sortDescending(assets, func(n AssetNode) float64 { return n.Total }, func(n AssetNode) string { return n.Name })

			subClasses = append(subClasses, SubClassNode{
				SubClass: subClass,
				Total: valuation.Round(lo.SumBy(assets, func(n AssetNode) float64 {
					return n.Total
				})),
				Assets: assets,
			})
		}
		sortDescending(subClasses, func(n SubClassNode) float64 { return n.Total }, func(n SubClassNode) string { return n.SubClass })

		classes = append(classes, ClassNode{
			Class: class,
			Total: valuation.Round(lo.SumBy(subClasses, func(n SubClassNode) float64 {
				return n.Total
			})),
			SubClasses: subClasses,
		})
	}
	sortDescending(classes, func(n ClassNode) float64 { return n.Total }, func(n ClassNode) string { return n.Class })

	return classes
}

// sortDescending orders nodes by descending value, breaking ties
// alphabetically so output is deterministic.
func sortDescending[T any](nodes []T, value func(T) float64, key func(T) string) {
	sort.Slice(nodes, func(i, j int) bool {
		if value(nodes[i]) != value(nodes[j]) {
			return value(nodes[i]) > value(nodes[j])
		}
		return key(nodes[i]) < key(nodes[j])
	})
}
