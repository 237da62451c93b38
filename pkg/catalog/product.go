// Package catalog implements the shop listing engine: a single pass
// that filters the full product snapshot, applies one of a fixed set
// of sort orders, and slices out the visible page. The engine never
// mutates product records; it derives a read model for the shop page.
package catalog

import (
	"strings"
	"time"
)

// PlaceholderImage marks a product with no image, mirroring the cart
// convention (see cart.PlaceholderImage).
const PlaceholderImage = "placeholder"

// Product is the read-only record the engine filters over. Sizes and
// Tags are optional; a product with no sizes never matches a size
// facet. OriginalPrice is zero when the product has never been marked
// down.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	Image         string    `json:"image"`
	Colors        []string  `json:"colors,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Materials     []string  `json:"materials,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	InStock       bool      `json:"in_stock"`
	IsNew         bool      `json:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller"`
	Popularity    int       `json:"popularity"`
	CreatedAt     time.Time `json:"created_at"`
}

// OnSale reports whether the product is marked down from an original
// price.
func (p Product) OnSale() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice > p.Price
}

// DisplayImage returns the product image or the placeholder marker.
func (p Product) DisplayImage() string {
	if p.Image == "" {
		return PlaceholderImage
	}
	return p.Image
}

// haystack concatenates every searchable text field into one lowercase
// string. Search queries are substring-matched against the whole
// haystack, not tokenized, so a multi-word query only hits when it
// appears verbatim.
func (p Product) haystack() string {
	parts := make([]string, 0, 4+len(p.Materials)+len(p.Tags))
	parts = append(parts, p.Name, p.Description, p.Category, p.Subcategory)
	parts = append(parts, p.Materials...)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
