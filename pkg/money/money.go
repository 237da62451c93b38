// Package money provides integer Naira arithmetic and display formatting.
//
// Amounts are whole Naira stored as int64; there are no kobo anywhere in
// the price data, so fractional units only appear transiently inside
// rate calculations and are rounded away before they leave this package.
package money

import "strconv"

// Symbol is the currency symbol used for formatted amounts.
const Symbol = "₦"

// Format renders an amount as a display string with thousands grouping,
// e.g. Format(50000) == "₦50,000". Negative amounts keep the sign ahead
// of the symbol.
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}

	s := Symbol + string(out)
	if neg {
		s = "-" + s
	}
	return s
}

// RoundRate applies a basis-point rate to an amount and rounds half-up
// to the nearest whole unit. RoundRate(100, 750) is 100 × 7.5% = 8.
func RoundRate(amount int64, bps int) int64 {
	if amount <= 0 || bps <= 0 {
		return 0
	}
	return (amount*int64(bps) + 5000) / 10000
}

// NonNegative floors an amount at zero.
func NonNegative(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}
