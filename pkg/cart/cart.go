// Package cart implements the cart pricing engine: a per-session list
// of line items plus at most one coupon, with subtotal, discount, tax,
// shipping and total recomputed synchronously inside every mutation.
// Callers never observe stale totals.
//
// The engine is plain data behind an explicit object; one Engine is
// constructed per session (or per test) with its collaborators
// injected, never shared through package state.
package cart

import (
	"context"

	"github.com/muheezokunade/storefront/pkg/coupon"
	"github.com/muheezokunade/storefront/pkg/errors"
)

// Engine owns the cart state for a single session. It is not safe for
// concurrent use; a session's mutations are sequenced by the caller.
type Engine struct {
	cfg     Config
	items   []LineItem
	applied *coupon.Rule
	totals  Totals
}

// New creates a cart engine. A nil config uses the defaults.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg.withDefaults()}
}

// Load hydrates the engine from the configured store. A session with
// no saved cart starts empty; that is not an error. Quantities are
// re-clamped and the coupon code re-resolved, so a snapshot written
// under different rules still loads into a valid cart.
func (e *Engine) Load(ctx context.Context) error {
	if e.cfg.Store == nil {
		return nil
	}

	snap, err := e.cfg.Store.Load(ctx, e.cfg.SessionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return errors.NewStoreError("load cart", e.cfg.SessionID, err)
	}

	e.items = e.items[:0]
	for _, item := range snap.Items {
		if item.Quantity < 1 {
			continue
		}
		item.Quantity = e.clamp(item.Quantity)
		if item.Image == "" {
			item.Image = PlaceholderImage
		}
		e.items = append(e.items, item)
	}

	e.applied = nil
	if snap.CouponCode != "" && e.cfg.Coupons != nil {
		if rule, ok := e.cfg.Coupons.FindByCode(snap.CouponCode); ok {
			e.applied = &rule
		}
	}

	e.recalculate()
	return nil
}

// AddItem inserts a line or, when one with the same composite key
// already exists, merges quantities by addition. The resulting
// quantity is clamped to the configured cap; a non-positive quantity
// adds a single unit. The returned error is solely the persistence
// hook's: the in-memory mutation always takes effect.
func (e *Engine) AddItem(ctx context.Context, item LineItem, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if item.Image == "" {
		item.Image = PlaceholderImage
	}

	if i, ok := e.find(item.Key()); ok {
		e.items[i].Quantity = e.clamp(e.items[i].Quantity + quantity)
	} else {
		item.Quantity = e.clamp(quantity)
		e.items = append(e.items, item)
	}

	e.recalculate()
	return e.persist(ctx, "add item")
}

// RemoveItem deletes the line matching the composite key. Removing an
// absent key is a no-op, not an error.
func (e *Engine) RemoveItem(ctx context.Context, productID, color, size string) error {
	i, ok := e.find(Key{ProductID: productID, Color: color, Size: size})
	if !ok {
		return nil
	}

	e.items = append(e.items[:i], e.items[i+1:]...)
	e.recalculate()
	return e.persist(ctx, "remove item")
}

// UpdateQuantity sets a line's quantity, clamped to the cap. A
// quantity of zero or less removes the line. Updating an absent key is
// a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int, color, size string) error {
	if quantity <= 0 {
		return e.RemoveItem(ctx, productID, color, size)
	}

	i, ok := e.find(Key{ProductID: productID, Color: color, Size: size})
	if !ok {
		return nil
	}

	e.items[i].Quantity = e.clamp(quantity)
	e.recalculate()
	return e.persist(ctx, "update quantity")
}

// Clear empties the cart and removes any applied coupon.
func (e *Engine) Clear(ctx context.Context) error {
	e.items = nil
	e.applied = nil
	e.recalculate()
	return e.persist(ctx, "clear cart")
}

// ApplyCoupon looks the code up in the coupon repository. On a hit it
// replaces any previously applied coupon and reports true; on a miss
// the cart is left untouched and it reports false. A miss is not an
// error; the returned error is the persistence hook's only.
func (e *Engine) ApplyCoupon(ctx context.Context, code string) (bool, error) {
	if e.cfg.Coupons == nil {
		return false, nil
	}

	rule, ok := e.cfg.Coupons.FindByCode(code)
	if !ok {
		return false, nil
	}

	e.applied = &rule
	e.recalculate()
	return true, e.persist(ctx, "apply coupon")
}

// RemoveCoupon clears the applied coupon, if any.
func (e *Engine) RemoveCoupon(ctx context.Context) error {
	if e.applied == nil {
		return nil
	}

	e.applied = nil
	e.recalculate()
	return e.persist(ctx, "remove coupon")
}

// Totals returns the current derived totals. They already reflect the
// latest mutation; there is no recompute window.
func (e *Engine) Totals() Totals {
	return e.totals
}

// Items returns a copy of the line items in insertion order.
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// AppliedCoupon returns the applied coupon rule, if any.
func (e *Engine) AppliedCoupon() (coupon.Rule, bool) {
	if e.applied == nil {
		return coupon.Rule{}, false
	}
	return *e.applied, true
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

// Count returns the total unit count across all lines.
func (e *Engine) Count() int {
	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// Snapshot returns the persistable shape of the cart.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{Items: e.Items()}
	if e.applied != nil {
		snap.CouponCode = e.applied.Code
	}
	return snap
}

func (e *Engine) find(key Key) (int, bool) {
	for i, item := range e.items {
		if item.Key() == key {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) clamp(quantity int) int {
	if quantity > e.cfg.MaxQuantity {
		return e.cfg.MaxQuantity
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}

func (e *Engine) recalculate() {
	e.totals = computeTotals(e.items, e.applied, e.cfg)
}

func (e *Engine) persist(ctx context.Context, op string) error {
	if e.cfg.Store == nil {
		return nil
	}
	if err := e.cfg.Store.Save(ctx, e.cfg.SessionID, e.Snapshot()); err != nil {
		return errors.NewStoreError(op, e.cfg.SessionID, err)
	}
	return nil
}
