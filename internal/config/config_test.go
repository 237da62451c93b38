package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muheezokunade/storefront/pkg/coupon"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 750, cfg.Pricing.TaxRateBps)
	assert.Equal(t, int64(2500), cfg.Pricing.ShippingFee)
	assert.Equal(t, int64(50000), cfg.Pricing.FreeShippingAt)
	assert.Equal(t, 99, cfg.Pricing.MaxQuantity)
	assert.Equal(t, 12, cfg.Shop.PageSize)
	assert.NotEmpty(t, cfg.Coupons)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
pricing:
  tax_rate_bps: 500
  free_shipping_at: 75000
shop:
  page_size: 24
coupons:
  - code: TEST15
    type: percentage
    value: 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Pricing.TaxRateBps)
	assert.Equal(t, int64(75000), cfg.Pricing.FreeShippingAt)
	// Unset fields fall back to defaults.
	assert.Equal(t, int64(2500), cfg.Pricing.ShippingFee)
	assert.Equal(t, 24, cfg.Shop.PageSize)
	require.Len(t, cfg.Coupons, 1)
	assert.Equal(t, "TEST15", cfg.Coupons[0].Code)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("TABLE_NAME", "storefront_test")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "storefront_test", cfg.Database.Table)
	assert.Equal(t, "http://localhost:8000", cfg.Database.Endpoint)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"tax out of range", "pricing:\n  tax_rate_bps: 20000\n"},
		{"negative shipping", "pricing:\n  shipping_fee: -5\n"},
		{"bad page size", "shop:\n  page_size: -1\n"},
		{"not yaml", ":::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/config.yaml")
	assert.Error(t, err)
}

func TestCartConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	repo := coupon.NewStaticRepository(cfg.Coupons...)
	cartCfg := cfg.CartConfig("sess-1", repo, nil)

	assert.Equal(t, "sess-1", cartCfg.SessionID)
	assert.Equal(t, cfg.Pricing.TaxRateBps, cartCfg.TaxRateBps)
	assert.Equal(t, repo, cartCfg.Coupons)
}
