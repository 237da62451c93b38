package dynamo

import (
	"time"

	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/catalog"
)

// CartRecord is the persisted shape of a session's cart. Abandoned
// carts age out through the TTL attribute.
type CartRecord struct {
	ID         string          `dynamorm:"pk" json:"id"`
	SessionID  string          `dynamorm:"index:gsi-session,unique" json:"session_id"`
	Items      []cart.LineItem `dynamorm:"json" json:"items"`
	CouponCode string          `json:"coupon_code,omitempty"`
	ExpiresAt  time.Time       `dynamorm:"ttl" json:"expires_at"`
	CreatedAt  time.Time       `dynamorm:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `dynamorm:"updated_at" json:"updated_at"`
}

// Snapshot converts the record to the engine's persistence shape.
func (r CartRecord) Snapshot() cart.Snapshot {
	return cart.Snapshot{Items: r.Items, CouponCode: r.CouponCode}
}

// ProductRecord is a catalog product as stored in DynamoDB. The
// category GSI serves the admin side; the shop engine always works on
// a full snapshot.
type ProductRecord struct {
	ID            string    `dynamorm:"pk" json:"id"`
	Category      string    `dynamorm:"index:gsi-category,pk" json:"category"`
	Name          string    `dynamorm:"index:gsi-category,sk" json:"name"`
	Description   string    `json:"description"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	Image         string    `json:"image,omitempty"`
	Colors        []string  `dynamorm:"set" json:"colors,omitempty"`
	Sizes         []string  `dynamorm:"set" json:"sizes,omitempty"`
	Materials     []string  `dynamorm:"set" json:"materials,omitempty"`
	Tags          []string  `dynamorm:"set" json:"tags,omitempty"`
	InStock       bool      `json:"in_stock"`
	IsNew         bool      `json:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller"`
	Popularity    int       `json:"popularity"`
	CreatedAt     time.Time `dynamorm:"created_at" json:"created_at"`
	UpdatedAt     time.Time `dynamorm:"updated_at" json:"updated_at"`
}

// Product converts the record to the catalog engine's read model.
func (r ProductRecord) Product() catalog.Product {
	return catalog.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Image:         r.Image,
		Colors:        r.Colors,
		Sizes:         r.Sizes,
		Materials:     r.Materials,
		Tags:          r.Tags,
		InStock:       r.InStock,
		IsNew:         r.IsNew,
		IsBestSeller:  r.IsBestSeller,
		Popularity:    r.Popularity,
		CreatedAt:     r.CreatedAt,
	}
}
