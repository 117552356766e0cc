// Package ranking applies the fuzzy scorer across a candidate set.
package ranking

import (
	"sort"

	"rbxnav/internal/fuzzy"
	"rbxnav/internal/types"
)

// Ranked pairs an item with its best match score and tier.
type Ranked[T any] struct {
	Item  T
	Score float64
	Tier  types.Tier
}

// Rank scores every item against the query over each searchable field,
// keeps the best field result per item, drops non-matches and sorts by
// score descending. The sort is stable: equal scores keep candidate order.
func Rank[T any](query string, items []T, fields func(T) []string, opts fuzzy.Options) []Ranked[T] {
	results := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		best := types.Match{Tier: types.TierNone}
		for _, field := range fields(item) {
			m := fuzzy.Score(query, field, opts)
			if !m.IsMatch {
				continue
			}
			if m.Score > best.Score || best.Tier == types.TierNone {
				best = m
			}
		}
		if best.Tier == types.TierNone {
			continue
		}
		results = append(results, Ranked[T]{Item: item, Score: best.Score, Tier: best.Tier})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
