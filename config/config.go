package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

// CacheConfig selects the calculation cache. An empty RedisAddr keeps the cache in memory.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	PingMaxTries  uint          `mapstructure:"ping_max_tries"`
}

type PricingConfig struct {
	GoldPricePerGram string        `mapstructure:"gold_price_per_gram"`
	GoldFeedURL      string        `mapstructure:"gold_feed_url"`
	FeedTimeout      time.Duration `mapstructure:"feed_timeout"`
	FeedMaxTries     uint          `mapstructure:"feed_max_tries"`
	FeedCacheTTL     time.Duration `mapstructure:"feed_cache_ttl"`
}

// GoldPrice returns the static gold price. Validate guarantees it parses.
func (p PricingConfig) GoldPrice() decimal.Decimal {
	d, err := decimal.NewFromString(p.GoldPricePerGram)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

const (
	DefaultAddr             = ":8080"
	DefaultRateCapacity     = 5
	DefaultRateRefill       = time.Minute
	DefaultCacheTTL         = 10 * time.Minute
	DefaultGoldPricePerGram = "1050000"
	DefaultFeedMaxTries     = 3
	envPrefix               = "ZAKAT"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":                 DefaultAddr,
		"server.read_timeout":         15 * time.Second,
		"server.write_timeout":        15 * time.Second,
		"server.idle_timeout":         60 * time.Second,
		"server.shutdown_timeout":     10 * time.Second,
		"rate_limit.capacity":         DefaultRateCapacity,
		"rate_limit.refill":           DefaultRateRefill,
		"cache.redis_addr":            "",
		"cache.redis_password":        "",
		"cache.redis_db":              0,
		"cache.ttl":                   DefaultCacheTTL,
		"cache.ping_max_tries":        5,
		"pricing.gold_price_per_gram": DefaultGoldPricePerGram,
		"pricing.gold_feed_url":       "",
		"pricing.feed_timeout":        5 * time.Second,
		"pricing.feed_max_tries":      DefaultFeedMaxTries,
		"pricing.feed_cache_ttl":      time.Hour,
		"log.level":                   "info",
		"log.development":             false,
	}
}

// Load reads configuration from path (optional) and ZAKAT_* environment
// variables, e.g. ZAKAT_CACHE_REDIS_ADDR. Environment wins over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is empty")
	}
	if cfg.RateLimit.Capacity <= 0 {
		return errors.New("invalid rate_limit.capacity")
	}
	if cfg.RateLimit.Refill <= 0 {
		return errors.New("invalid rate_limit.refill")
	}
	if cfg.Cache.TTL < 0 {
		return errors.New("invalid cache.ttl")
	}
	price, err := decimal.NewFromString(cfg.Pricing.GoldPricePerGram)
	if err != nil {
		return fmt.Errorf("invalid pricing.gold_price_per_gram: %w", err)
	}
	if !price.IsPositive() {
		return errors.New("pricing.gold_price_per_gram must be positive")
	}
	if cfg.Pricing.GoldFeedURL != "" && !strings.HasPrefix(cfg.Pricing.GoldFeedURL, "http") {
		return errors.New("pricing.gold_feed_url must be an http(s) URL")
	}
	if cfg.Pricing.FeedMaxTries == 0 {
		return errors.New("invalid pricing.feed_max_tries")
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", cfg.Log.Level)
	}
	return nil
}
