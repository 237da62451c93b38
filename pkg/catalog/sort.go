package catalog

import "strings"

// SortKey names one of the fixed shop sort orders.
type SortKey string

const (
	// SortRelevance preserves the input order exactly.
	SortRelevance SortKey = "relevance"
	// SortNewest orders by creation time, most recent first.
	SortNewest SortKey = "newest"
	// SortPriceLowHigh orders by price ascending.
	SortPriceLowHigh SortKey = "price-low"
	// SortPriceHighLow orders by price descending.
	SortPriceHighLow SortKey = "price-high"
	// SortNameAsc orders by name A to Z.
	SortNameAsc SortKey = "name-asc"
	// SortNameDesc orders by name Z to A.
	SortNameDesc SortKey = "name-desc"
	// SortPopularity orders by popularity descending.
	SortPopularity SortKey = "popularity"
)

// lessFunc reports whether a sorts before b. All sorts are applied
// stably, so ties keep their input order.
type lessFunc func(a, b *Product) bool

// comparators binds each sort key to its single-field comparator.
// SortRelevance is deliberately absent: it performs no reordering.
var comparators = map[SortKey]lessFunc{
	SortNewest: func(a, b *Product) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
	SortPriceLowHigh: func(a, b *Product) bool {
		return a.Price < b.Price
	},
	SortPriceHighLow: func(a, b *Product) bool {
		return a.Price > b.Price
	},
	SortNameAsc: func(a, b *Product) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	SortNameDesc: func(a, b *Product) bool {
		return strings.ToLower(a.Name) > strings.ToLower(b.Name)
	},
	SortPopularity: func(a, b *Product) bool {
		return a.Popularity > b.Popularity
	},
}

// ParseSortKey maps a raw query value to a SortKey, defaulting to
// relevance for anything unknown.
func ParseSortKey(raw string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := comparators[key]; ok {
		return key
	}
	return SortRelevance
}
