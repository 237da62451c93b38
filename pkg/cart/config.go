package cart

import "github.com/muheezokunade/storefront/pkg/coupon"

// Default pricing parameters. Amounts are whole Naira.
const (
	DefaultTaxRateBps     = 750   // 7.5% VAT
	DefaultShippingFee    = 2500  // flat standard shipping
	DefaultFreeShippingAt = 50000 // discounted subtotal at or above ships free
	DefaultMaxQuantity    = 99    // per-line quantity cap
)

// Config holds the pricing parameters and collaborators for a cart
// engine. The zero value of any field falls back to the defaults
// above; Coupons and Store are optional.
type Config struct {
	// TaxRateBps is the VAT rate in basis points applied to the
	// discounted subtotal.
	TaxRateBps int

	// ShippingFee is the flat fee charged below the free-shipping
	// threshold.
	ShippingFee int64

	// FreeShippingAt is the discounted subtotal at which shipping
	// becomes free. The boundary is inclusive.
	FreeShippingAt int64

	// MaxQuantity caps the quantity of a single line.
	MaxQuantity int

	// SessionID names the session the cart belongs to; it is handed
	// to the Store on every persistence call.
	SessionID string

	// Coupons resolves coupon codes. A nil repository makes every
	// ApplyCoupon miss.
	Coupons coupon.Repository

	// Store receives the cart snapshot after every mutation. A nil
	// store disables persistence.
	Store Store
}

// DefaultConfig returns the default pricing configuration.
func DefaultConfig() *Config {
	return &Config{
		TaxRateBps:     DefaultTaxRateBps,
		ShippingFee:    DefaultShippingFee,
		FreeShippingAt: DefaultFreeShippingAt,
		MaxQuantity:    DefaultMaxQuantity,
	}
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.TaxRateBps <= 0 {
		cfg.TaxRateBps = DefaultTaxRateBps
	}
	if cfg.ShippingFee <= 0 {
		cfg.ShippingFee = DefaultShippingFee
	}
	if cfg.FreeShippingAt <= 0 {
		cfg.FreeShippingAt = DefaultFreeShippingAt
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = DefaultMaxQuantity
	}
	return cfg
}
