// Package config loads the storefront application configuration from
// YAML with environment-variable overrides for deployment settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/catalog"
	"github.com/muheezokunade/storefront/pkg/coupon"
	"github.com/muheezokunade/storefront/pkg/errors"
)

// Config is the full application configuration.
type Config struct {
	Server   Server        `yaml:"server"`
	Database Database      `yaml:"database"`
	Pricing  Pricing       `yaml:"pricing"`
	Shop     Shop          `yaml:"shop"`
	Coupons  []coupon.Rule `yaml:"coupons"`
}

// Server holds the local HTTP server settings.
type Server struct {
	Port string `yaml:"port"`
}

// Database holds the DynamoDB connection settings. An empty Endpoint
// uses the real AWS endpoint; local development points it at
// dynamodb-local.
type Database struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Table    string `yaml:"table"`
}

// Pricing holds the cart engine parameters.
type Pricing struct {
	TaxRateBps     int   `yaml:"tax_rate_bps"`
	ShippingFee    int64 `yaml:"shipping_fee"`
	FreeShippingAt int64 `yaml:"free_shipping_at"`
	MaxQuantity    int   `yaml:"max_quantity"`
}

// Shop holds the catalog engine parameters.
type Shop struct {
	PageSize int `yaml:"page_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:   Server{Port: "8080"},
		Database: Database{Region: "us-east-1", Table: "storefront"},
		Pricing: Pricing{
			TaxRateBps:     cart.DefaultTaxRateBps,
			ShippingFee:    cart.DefaultShippingFee,
			FreeShippingAt: cart.DefaultFreeShippingAt,
			MaxQuantity:    cart.DefaultMaxQuantity,
		},
		Shop:    Shop{PageSize: catalog.DefaultPageSize},
		Coupons: coupon.DefaultRules(),
	}
}

// Load reads the YAML file at path, fills unset fields from the
// defaults, then applies environment overrides. An empty path loads
// defaults and overrides only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.fillDefaults()
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Database.Region == "" {
		c.Database.Region = def.Database.Region
	}
	if c.Database.Table == "" {
		c.Database.Table = def.Database.Table
	}
	if c.Pricing.TaxRateBps == 0 {
		c.Pricing.TaxRateBps = def.Pricing.TaxRateBps
	}
	if c.Pricing.ShippingFee == 0 {
		c.Pricing.ShippingFee = def.Pricing.ShippingFee
	}
	if c.Pricing.FreeShippingAt == 0 {
		c.Pricing.FreeShippingAt = def.Pricing.FreeShippingAt
	}
	if c.Pricing.MaxQuantity == 0 {
		c.Pricing.MaxQuantity = def.Pricing.MaxQuantity
	}
	if c.Shop.PageSize == 0 {
		c.Shop.PageSize = def.Shop.PageSize
	}
	if len(c.Coupons) == 0 {
		c.Coupons = coupon.DefaultRules()
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.Database.Region = v
	}
	if v := os.Getenv("DYNAMODB_ENDPOINT"); v != "" {
		c.Database.Endpoint = v
	}
	if v := os.Getenv("TABLE_NAME"); v != "" {
		c.Database.Table = v
	}
}

func (c *Config) validate() error {
	if c.Pricing.TaxRateBps < 0 || c.Pricing.TaxRateBps > 10000 {
		return fmt.Errorf("%w: tax rate %d bps out of range", errors.ErrInvalidConfig, c.Pricing.TaxRateBps)
	}
	if c.Pricing.ShippingFee < 0 || c.Pricing.FreeShippingAt < 0 {
		return fmt.Errorf("%w: negative shipping parameters", errors.ErrInvalidConfig)
	}
	if c.Shop.PageSize < 1 {
		return fmt.Errorf("%w: page size %d", errors.ErrInvalidConfig, c.Shop.PageSize)
	}
	return nil
}

// CartConfig builds the cart engine configuration for a session with
// the given collaborators attached.
func (c *Config) CartConfig(sessionID string, coupons coupon.Repository, store cart.Store) *cart.Config {
	return &cart.Config{
		TaxRateBps:     c.Pricing.TaxRateBps,
		ShippingFee:    c.Pricing.ShippingFee,
		FreeShippingAt: c.Pricing.FreeShippingAt,
		MaxQuantity:    c.Pricing.MaxQuantity,
		SessionID:      sessionID,
		Coupons:        coupons,
		Store:          store,
	}
}
