package cart

import "context"

// PlaceholderImage marks a line item whose product has no image. The
// presentation layer swaps it for its own placeholder asset; an empty
// string never reaches the read model.
const PlaceholderImage = "placeholder"

// Key identifies a line item. The same product in a different color or
// size is a distinct line.
type Key struct {
	ProductID string
	Color     string
	Size      string
}

// LineItem is one entry in the cart. Name, Image and Category are
// display metadata and never enter the totals computation.
type LineItem struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Category  string `json:"category,omitempty"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Key returns the composite key identifying this line.
func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Color: li.Color, Size: li.Size}
}

// Subtotal is the line's contribution to the cart subtotal.
func (li LineItem) Subtotal() int64 {
	return li.Price * int64(li.Quantity)
}

// Snapshot is the persisted shape of a cart: its lines and the code of
// the applied coupon, if any. The coupon is stored by code and
// re-resolved against the repository on load, so a rule retired between
// sessions silently drops off the cart.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	CouponCode string     `json:"coupon_code,omitempty"`
}

// Store persists cart snapshots per session. Implementations live in
// store/; the engine only calls Save after a mutation and Load when
// hydrating. A Load for a session with no saved cart returns
// errors.ErrCartNotFound.
type Store interface {
	Load(ctx context.Context, sessionID string) (Snapshot, error)
	Save(ctx context.Context, sessionID string, snap Snapshot) error
}
