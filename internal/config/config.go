package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"swapdesk/pkg/icons"
	"swapdesk/pkg/integrations/pricefeed/livefeed"
	"swapdesk/pkg/types/pricefeed"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration. Values come from
// defaults, an optional .swapdesk.yaml, and SWAPDESK_* environment
// variables, in increasing priority.
type Config struct {
	ListenAddr          string
	PriceFeedURL        string
	PriceFeedMode       string
	IconBaseURL         string
	DefaultFromCurrency string
	DefaultToCurrency   string
	CacheTTL            time.Duration
	SessionTTL          time.Duration
	DebounceDelay       time.Duration
	ExecuteDelay        time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".swapdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("price_feed_url", livefeed.DefaultURL)
	v.SetDefault("price_feed_mode", pricefeed.ModeLive)
	v.SetDefault("icon_base_url", icons.DefaultBaseURL)
	v.SetDefault("default_from_currency", "ETH")
	v.SetDefault("default_to_currency", "USDC")
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("debounce_delay", "300ms")
	v.SetDefault("execute_delay", "1s")

	v.SetEnvPrefix("SWAPDESK")
	v.AutomaticEnv()

	// config file is optional
	_ = v.ReadInConfig()

	cfg := &Config{
		ListenAddr:          v.GetString("listen_addr"),
		PriceFeedURL:        v.GetString("price_feed_url"),
		PriceFeedMode:       v.GetString("price_feed_mode"),
		IconBaseURL:         v.GetString("icon_base_url"),
		DefaultFromCurrency: v.GetString("default_from_currency"),
		DefaultToCurrency:   v.GetString("default_to_currency"),
		CacheTTL:            v.GetDuration("cache_ttl"),
		SessionTTL:          v.GetDuration("session_ttl"),
		DebounceDelay:       v.GetDuration("debounce_delay"),
		ExecuteDelay:        v.GetDuration("execute_delay"),
	}

	return cfg, cfg.IsValid()
}

func (c *Config) IsValid() error {
	switch {
	case c.PriceFeedMode != pricefeed.ModeLive && c.PriceFeedMode != pricefeed.ModeMock:
		return errors.Wrapf(ErrInvalidConfig, "unknown price feed mode: %s", c.PriceFeedMode)
	case c.CacheTTL <= 0:
		return errors.Wrap(ErrInvalidConfig, "cache TTL must be positive")
	case c.SessionTTL <= 0:
		return errors.Wrap(ErrInvalidConfig, "session TTL must be positive")
	case c.DebounceDelay <= 0:
		return errors.Wrap(ErrInvalidConfig, "debounce delay must be positive")
	case c.ExecuteDelay < 0:
		return errors.Wrap(ErrInvalidConfig, "execute delay cannot be negative")
	default:
		return nil
	}
}
