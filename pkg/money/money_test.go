package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "₦0"},
		{"small", 950, "₦950"},
		{"thousands", 2500, "₦2,500"},
		{"threshold", 50000, "₦50,000"},
		{"millions", 1250000, "₦1,250,000"},
		{"negative", -2500, "-₦2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}

func TestRoundRate(t *testing.T) {
	// 7.5% VAT on whole-Naira amounts.
	assert.Equal(t, int64(8), RoundRate(100, 750))   // 7.5 rounds up
	assert.Equal(t, int64(75), RoundRate(1000, 750)) // exact
	assert.Equal(t, int64(15), RoundRate(200, 750))  // exact
	assert.Equal(t, int64(2), RoundRate(20, 750))    // 1.5 rounds up
	assert.Equal(t, int64(1), RoundRate(10, 750))    // 0.75 rounds up
	assert.Equal(t, int64(0), RoundRate(6, 750))     // 0.45 rounds down
}

func TestRoundRateDegenerateInputs(t *testing.T) {
	assert.Equal(t, int64(0), RoundRate(0, 750))
	assert.Equal(t, int64(0), RoundRate(-100, 750))
	assert.Equal(t, int64(0), RoundRate(100, 0))
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, int64(0), NonNegative(-1))
	assert.Equal(t, int64(0), NonNegative(0))
	assert.Equal(t, int64(7), NonNegative(7))
}
