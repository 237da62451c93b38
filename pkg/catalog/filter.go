package catalog

import "strings"

// PriceRange is an inclusive price bound. A zero Max means unbounded.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// contains reports whether the price falls inside the range.
func (r PriceRange) contains(price int64) bool {
	if price < r.Min {
		return false
	}
	if r.Max > 0 && price > r.Max {
		return false
	}
	return true
}

// FilterState holds every active filter. Facet slices are OR within
// the facet; distinct fields combine with AND. Empty selectors mean no
// constraint.
type FilterState struct {
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Price       PriceRange `json:"price"`
	Colors      []string   `json:"colors,omitempty"`
	Sizes       []string   `json:"sizes,omitempty"`
	Materials   []string   `json:"materials,omitempty"`

	InStock      bool `json:"in_stock,omitempty"`
	OnSale       bool `json:"on_sale,omitempty"`
	IsNew        bool `json:"is_new,omitempty"`
	IsBestSeller bool `json:"is_best_seller,omitempty"`

	Search string `json:"search,omitempty"`
}

// matches applies every active predicate; a product must satisfy all
// of them simultaneously. query is the pre-lowered search string.
func (f FilterState) matches(p Product, query string) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.Subcategory != "" && !strings.EqualFold(f.Subcategory, p.Subcategory) {
		return false
	}
	if !f.Price.contains(p.Price) {
		return false
	}
	if len(f.Colors) > 0 && !anyFold(p.Colors, f.Colors) {
		return false
	}
	if len(f.Sizes) > 0 && !anyFold(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Materials) > 0 && !anyFold(p.Materials, f.Materials) {
		return false
	}
	if f.InStock && !p.InStock {
		return false
	}
	if f.OnSale && !p.OnSale() {
		return false
	}
	if f.IsNew && !p.IsNew {
		return false
	}
	if f.IsBestSeller && !p.IsBestSeller {
		return false
	}
	if query != "" && !strings.Contains(p.haystack(), query) {
		return false
	}
	return true
}

// anyFold reports whether any selected value appears among the
// product's values, case-insensitively.
func anyFold(have, selected []string) bool {
	for _, s := range selected {
		for _, h := range have {
			if strings.EqualFold(s, h) {
				return true
			}
		}
	}
	return false
}
