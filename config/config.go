package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	PrimaryPriceURL    string
	SecondaryPriceURL  string
	HTTPTimeout        time.Duration
	SecondaryRateLimit float64

	BreakerFailures uint32
	BreakerCooldown time.Duration

	Slippage    float64
	FromBalance float64
	ToBalance   float64

	FailureRate float64
	MinDelay    time.Duration
	MaxDelay    time.Duration

	LogLevel string
}

var globalConfig *Config

// Load reads configuration from environment variables and an optional config file
func Load() (*Config, error) {
	viper.SetConfigName(".swap-sim")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("primary_price_url", "https://interview.switcheo.com/prices.json")
	viper.SetDefault("secondary_price_url", "https://api.coingecko.com/api/v3/simple/price")
	viper.SetDefault("http_timeout", "0s")
	viper.SetDefault("secondary_rate_limit", 0.5)
	viper.SetDefault("breaker_failures", 3)
	viper.SetDefault("breaker_cooldown", "60s")
	viper.SetDefault("slippage", 0.5)
	viper.SetDefault("from_balance", 3.4)
	viper.SetDefault("to_balance", 8600)
	viper.SetDefault("failure_rate", 0.05)
	viper.SetDefault("min_delay", "1200ms")
	viper.SetDefault("max_delay", "2400ms")
	viper.SetDefault("log_level", "warn")

	// Read from environment variables
	viper.SetEnvPrefix("SWAP_SIM")
	viper.AutomaticEnv()

	// Config file is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		PrimaryPriceURL:    viper.GetString("primary_price_url"),
		SecondaryPriceURL:  viper.GetString("secondary_price_url"),
		HTTPTimeout:        viper.GetDuration("http_timeout"),
		SecondaryRateLimit: viper.GetFloat64("secondary_rate_limit"),
		BreakerFailures:    viper.GetUint32("breaker_failures"),
		BreakerCooldown:    viper.GetDuration("breaker_cooldown"),
		Slippage:           viper.GetFloat64("slippage"),
		FromBalance:        viper.GetFloat64("from_balance"),
		ToBalance:          viper.GetFloat64("to_balance"),
		FailureRate:        viper.GetFloat64("failure_rate"),
		MinDelay:           viper.GetDuration("min_delay"),
		MaxDelay:           viper.GetDuration("max_delay"),
		LogLevel:           viper.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.PrimaryPriceURL == "" || c.SecondaryPriceURL == "" {
		return fmt.Errorf("price source URLs cannot be empty")
	}
	if c.Slippage < 0.1 || c.Slippage > 3 {
		return fmt.Errorf("slippage must be between 0.1 and 3, got %v", c.Slippage)
	}
	if c.FromBalance < 0 || c.ToBalance < 0 {
		return fmt.Errorf("balances cannot be negative")
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure_rate must be between 0 and 1, got %v", c.FailureRate)
	}
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return fmt.Errorf("min_delay (%s) must not exceed max_delay (%s)", c.MinDelay, c.MaxDelay)
	}
	if c.SecondaryRateLimit < 0 {
		return fmt.Errorf("secondary_rate_limit cannot be negative")
	}
	return nil
}

// Get returns the configuration installed by Set or loaded earlier,
// loading it on first use
func Get() (*Config, error) {
	if globalConfig == nil {
		return Load()
	}
	return globalConfig, nil
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
