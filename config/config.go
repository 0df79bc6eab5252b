// Package config provides configuration loading for the storefront CLI and
// server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"storefront/logic"
	"storefront/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STOREFRONT_"

// Config represents the complete storefront configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig selects the blob gateway backend
type StorageConfig struct {
	// Backend is one of memory, file, sqlite, nats
	Backend string `yaml:"backend"`
	// Path is the directory (file) or database file (sqlite)
	Path string `yaml:"path"`
	// NATSURL is the server URL for the nats backend
	NATSURL string `yaml:"nats_url"`
	// Bucket is the JetStream KV bucket name
	Bucket string `yaml:"bucket"`
}

// PricingConfig holds the pricing policy. Amounts are decimal strings.
type PricingConfig struct {
	CouponCode       string `yaml:"coupon_code"`
	DiscountRate     string `yaml:"discount_rate"`
	FreeShippingOver string `yaml:"free_shipping_over"`
	FlatShipping     string `yaml:"flat_shipping"`
}

// CheckoutConfig configures the simulated payment
type CheckoutConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// ServerConfig configures `storefront serve`
type ServerConfig struct {
	GRPCAddr    string `yaml:"grpc_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
}

type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    defaultDataDir(),
			Bucket:  storage.DefaultBucket,
		},
		Pricing: PricingConfig{
			CouponCode:       "SAVE10",
			DiscountRate:     "0.10",
			FreeShippingOver: "50",
			FlatShipping:     "4.99",
		},
		Checkout: CheckoutConfig{
			Delay: logic.DefaultCheckoutDelay,
		},
		Server: ServerConfig{
			GRPCAddr:    ":50051",
			MetricsAddr: ":9090",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendMemory:
	case storage.BackendFile, storage.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case storage.BackendNATS:
		if c.Storage.NATSURL == "" {
			return fmt.Errorf("storage.nats_url is required for the nats backend")
		}
	default:
		return fmt.Errorf("storage.backend %q is not one of memory, file, sqlite, nats", c.Storage.Backend)
	}

	if c.Pricing.CouponCode == "" {
		return fmt.Errorf("pricing.coupon_code is required")
	}
	if _, err := c.PricingPolicy(); err != nil {
		return err
	}
	if c.Checkout.Delay < 0 {
		return fmt.Errorf("checkout.delay must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// PricingPolicy converts the pricing section into the engine's policy.
func (c *Config) PricingPolicy() (logic.PricingPolicy, error) {
	rate, err := parseAmount("pricing.discount_rate", c.Pricing.DiscountRate)
	if err != nil {
		return logic.PricingPolicy{}, err
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return logic.PricingPolicy{}, fmt.Errorf("pricing.discount_rate must be between 0 and 1")
	}
	threshold, err := parseAmount("pricing.free_shipping_over", c.Pricing.FreeShippingOver)
	if err != nil {
		return logic.PricingPolicy{}, err
	}
	flat, err := parseAmount("pricing.flat_shipping", c.Pricing.FlatShipping)
	if err != nil {
		return logic.PricingPolicy{}, err
	}
	return logic.PricingPolicy{
		CouponCode:       c.Pricing.CouponCode,
		DiscountRate:     rate,
		FreeShippingOver: threshold,
		FlatShipping:     flat,
	}, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must not be negative", field)
	}
	return v, nil
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Storage.Backend,
		Path:    c.Storage.Path,
		NATSURL: c.Storage.NATSURL,
		Bucket:  c.Storage.Bucket,
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load builds the effective configuration: defaults, then the file at
// path if one is given, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fromFile, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from STOREFRONT_* variables. PORT, when set,
// overrides the gRPC listen port.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"STORAGE_BACKEND":    &c.Storage.Backend,
		"STORAGE_PATH":       &c.Storage.Path,
		"NATS_URL":           &c.Storage.NATSURL,
		"NATS_BUCKET":        &c.Storage.Bucket,
		"COUPON_CODE":        &c.Pricing.CouponCode,
		"DISCOUNT_RATE":      &c.Pricing.DiscountRate,
		"FREE_SHIPPING_OVER": &c.Pricing.FreeShippingOver,
		"FLAT_SHIPPING":      &c.Pricing.FlatShipping,
		"GRPC_ADDR":          &c.Server.GRPCAddr,
		"METRICS_ADDR":       &c.Server.MetricsAddr,
		"LOG_LEVEL":          &c.Logging.Level,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "CHECKOUT_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCHECKOUT_DELAY: %w", EnvPrefix, err)
		}
		c.Checkout.Delay = d
	}

	if port := os.Getenv("PORT"); port != "" {
		c.Server.GRPCAddr = ":" + port
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
