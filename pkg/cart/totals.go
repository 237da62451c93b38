package cart

import (
	"github.com/muheezokunade/storefront/pkg/coupon"
	"github.com/muheezokunade/storefront/pkg/money"
)

// Totals is the fully derived pricing of a cart. It is recomputed in
// place after every mutation and never edited directly.
type Totals struct {
	Subtotal           int64 `json:"subtotal"`
	Discount           int64 `json:"discount"`
	DiscountedSubtotal int64 `json:"discounted_subtotal"`
	Tax                int64 `json:"tax"`
	Shipping           int64 `json:"shipping"`
	Total              int64 `json:"total"`
}

// FormattedTotals mirrors Totals with display-ready amounts.
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// Formatted renders each component for display.
func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Subtotal: money.Format(t.Subtotal),
		Discount: money.Format(t.Discount),
		Tax:      money.Format(t.Tax),
		Shipping: money.Format(t.Shipping),
		Total:    money.Format(t.Total),
	}
}

// computeTotals derives cart totals from the line items and the applied
// coupon. An empty cart is all zeros; in particular it is not charged
// shipping.
func computeTotals(items []LineItem, applied *coupon.Rule, cfg Config) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	var discount int64
	if applied != nil {
		discount = applied.Discount(subtotal)
	}
	discounted := money.NonNegative(subtotal - discount)

	shipping := cfg.ShippingFee
	if discounted >= cfg.FreeShippingAt {
		shipping = 0
	}

	tax := money.RoundRate(discounted, cfg.TaxRateBps)

	return Totals{
		Subtotal:           subtotal,
		Discount:           discount,
		DiscountedSubtotal: discounted,
		Tax:                tax,
		Shipping:           shipping,
		Total:              discounted + tax + shipping,
	}
}
