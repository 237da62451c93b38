// Package coupon defines discount rules and the lookup table consulted
// when a code is applied to a cart.
package coupon

import (
	"strings"

	"github.com/muheezokunade/storefront/pkg/money"
)

// Type enumerates the supported discount strategies.
type Type string

const (
	// TypePercentage deducts a percentage of the pre-discount subtotal.
	TypePercentage Type = "percentage"
	// TypeFixed deducts a fixed amount, capped at the subtotal.
	TypeFixed Type = "fixed"
)

// Rule describes a single coupon: its code, how it discounts, and by
// how much. Value is a percentage for TypePercentage and a whole-Naira
// amount for TypeFixed. Codes are stored upper-cased.
type Rule struct {
	Code        string `yaml:"code"`
	Type        Type   `yaml:"type"`
	Value       int64  `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// Discount returns the amount this rule deducts from the given
// subtotal. The result never exceeds the subtotal.
func (r Rule) Discount(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	var d int64
	switch r.Type {
	case TypePercentage:
		d = money.RoundRate(subtotal, int(r.Value)*100)
	case TypeFixed:
		d = r.Value
	}

	if d > subtotal {
		d = subtotal
	}
	return money.NonNegative(d)
}

// Repository looks up coupon rules by their code. Lookups are
// case-insensitive; a miss is reported by the boolean, not an error.
type Repository interface {
	FindByCode(code string) (Rule, bool)
}

// Normalize canonicalizes a user-entered code for lookup and storage.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
