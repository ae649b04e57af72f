package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"` // empty trusts none
}

// CatalogConfig selects where the foundation catalog comes from
type CatalogConfig struct {
	Source      string        `mapstructure:"source"` // "embedded", "file" or "remote"
	Path        string        `mapstructure:"path"`
	FeedURL     string        `mapstructure:"feed_url"`
	FeedTimeout time.Duration `mapstructure:"feed_timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Feed  int `mapstructure:"feed"`   // requests per hour
}

// MatchingConfig holds matcher options
type MatchingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Catalog sources
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRemote   = "remote"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shadematch/")

	// SHADEMATCH_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix("SHADEMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the environment when present.
// Variables that are already set win.
func loadEnvFile() error {
	if err := gotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// setDefaults sets default configuration values. Every key needs a
// default so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.trusted_proxies", []string{})

	// Catalog defaults
	v.SetDefault("catalog.source", SourceEmbedded)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.feed_url", "")
	v.SetDefault("catalog.feed_timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.feed", 60)

	v.SetDefault("matching.enable_debug_logging", false)
	v.SetDefault("storage.sqlite_path", "./data/shadematch.db")
	v.SetDefault("logging.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Server.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("server.environment must be 'development', 'production' or 'test', got: %s", config.Server.Environment)
	}

	for _, proxy := range config.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(proxy); err == nil {
			continue
		}
		if net.ParseIP(proxy) == nil {
			return fmt.Errorf("server.trusted_proxies must hold IPs or CIDRs, got: %s", proxy)
		}
	}

	switch config.Catalog.Source {
	case SourceEmbedded:
	case SourceFile:
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required when catalog.source is 'file'")
		}
	case SourceRemote:
		if config.Catalog.FeedURL == "" {
			return fmt.Errorf("catalog.feed_url is required when catalog.source is 'remote'")
		}
	default:
		return fmt.Errorf("catalog.source must be 'embedded', 'file' or 'remote', got: %s", config.Catalog.Source)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache.type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required when cache.type is 'redis'")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit.per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got: %s", config.Logging.Level)
	}

	return nil
}
