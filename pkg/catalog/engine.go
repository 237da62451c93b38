package catalog

import (
	"sort"
	"strings"
)

// DefaultPageSize is the shop page size when none is configured.
const DefaultPageSize = 12

// Engine derives the visible shop page from the full product snapshot
// and the current filter, sort and pagination state. Like the cart
// engine it is a per-session object, not shared state, and is not safe
// for concurrent use.
type Engine struct {
	filters FilterState
	sortKey SortKey
	page    int
	perPage int

	maxPrice int64

	visible      []Product
	totalResults int
	totalPages   int
}

// New creates an engine on page 1 with relevance ordering.
func New(perPage int) *Engine {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return &Engine{sortKey: SortRelevance, page: 1, perPage: perPage}
}

// SetFilters replaces the whole filter state and resets to page 1.
func (e *Engine) SetFilters(f FilterState) {
	e.filters = f
	e.page = 1
}

// Filters returns the current filter state.
func (e *Engine) Filters() FilterState {
	return e.filters
}

// SetSearch sets the free-text query and resets to page 1.
func (e *Engine) SetSearch(query string) {
	e.filters.Search = query
	e.page = 1
}

// SetPriceRange sets the inclusive price bound and resets to page 1.
func (e *Engine) SetPriceRange(min, max int64) {
	e.filters.Price = PriceRange{Min: min, Max: max}
	e.page = 1
}

// SetSort changes the active sort order. Sorting reorders the same
// result set, so the current page is kept.
func (e *Engine) SetSort(key SortKey) {
	e.sortKey = key
}

// SetPage moves to the given 1-indexed page. Values below 1 go to
// page 1.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}

// Apply runs the filter → sort → paginate pass over the snapshot and
// stores the visible page along with the result counts. An empty
// result set is a normal outcome. If a filter change shrank the
// results below the current page, the page is clamped to the last
// non-empty one.
func (e *Engine) Apply(all []Product) {
	query := strings.ToLower(strings.TrimSpace(e.filters.Search))

	filtered := make([]Product, 0, len(all))
	for _, p := range all {
		if e.filters.matches(p, query) {
			filtered = append(filtered, p)
		}
	}

	if less, ok := comparators[e.sortKey]; ok {
		sort.SliceStable(filtered, func(i, j int) bool {
			return less(&filtered[i], &filtered[j])
		})
	}

	e.totalResults = len(filtered)
	e.totalPages = (e.totalResults + e.perPage - 1) / e.perPage

	if e.totalPages > 0 && e.page > e.totalPages {
		e.page = e.totalPages
	}

	start := (e.page - 1) * e.perPage
	end := start + e.perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	e.visible = filtered[start:end]
}

// DerivePriceCeiling computes the catalog-wide maximum price once from
// the full snapshot. The shop page uses it as the upper bound of the
// price slider.
func (e *Engine) DerivePriceCeiling(all []Product) int64 {
	var max int64
	for _, p := range all {
		if p.Price > max {
			max = p.Price
		}
	}
	e.maxPrice = max
	return max
}

// PriceCeiling returns the derived catalog-wide maximum price.
func (e *Engine) PriceCeiling() int64 {
	return e.maxPrice
}

// Results returns the visible page of products.
func (e *Engine) Results() []Product {
	return e.visible
}

// TotalResults is the match count before pagination.
func (e *Engine) TotalResults() int {
	return e.totalResults
}

// TotalPages is the page count at the configured page size.
func (e *Engine) TotalPages() int {
	return e.totalPages
}

// Page returns the current 1-indexed page.
func (e *Engine) Page() int {
	return e.page
}

// PerPage returns the configured page size.
func (e *Engine) PerPage() int {
	return e.perPage
}
