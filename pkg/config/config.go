// ABOUTME: Configuration management for the application with file, .env and environment support
// ABOUTME: Defines configuration structures for the content API, cache, logging and context assembly

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. BLOG_CACHE_TYPE
const EnvPrefix = "BLOG"

// Config holds all application configuration
type Config struct {
	// WordPress contains content API configuration
	WordPress WordPressConfig `mapstructure:"wordpress"`

	// Cache contains cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Logging contains logger configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// Context contains view context assembly settings
	Context ContextConfig `mapstructure:"context"`

	// Features maps feature flag names to their state
	Features map[string]bool `mapstructure:"features"`
}

// WordPressConfig holds content API configuration
type WordPressConfig struct {
	// APIURL is the REST API base, e.g. https://example.com/wp-json/wp/v2
	APIURL string `mapstructure:"api_url"`

	// SiteURL is the public site root, used for the RSS feed
	SiteURL string `mapstructure:"site_url"`

	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`

	// RateLimit is the sustained requests per second; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`

	// Retries is how many times a failed request is retried
	Retries int `mapstructure:"retries"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string `mapstructure:"type"`

	// TTL is how long content API responses are cached
	TTL time.Duration `mapstructure:"ttl"`

	// ColorTTL is how long extracted image colors are cached
	ColorTTL time.Duration `mapstructure:"color_ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `mapstructure:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `mapstructure:"memory"`

	// SQLite contains SQLite cache configuration
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `mapstructure:"address"`

	// Password is the Redis authentication password
	Password string `mapstructure:"password"`

	// DB is the Redis database number
	DB int `mapstructure:"db"`

	// KeyPrefix namespaces every key written by this application
	KeyPrefix string `mapstructure:"key_prefix"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// File enables rotating file output when set
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ContextConfig holds view context assembly settings
type ContextConfig struct {
	Concurrency     int `mapstructure:"concurrency"`
	RelatedArticles int `mapstructure:"related_articles"`
	ExcerptLength   int `mapstructure:"excerpt_length"`
}

var (
	validCacheTypes = map[string]bool{"memory": true, "redis": true, "sqlite": true, "none": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// Load reads configuration from defaults, an optional config file, a .env
// file in the working directory and BLOG_* environment variables, in
// increasing order of precedence. An empty configFile searches for
// blog-views.{yaml,json,toml} in the working directory.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("blog-views")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.WordPress.APIURL = strings.TrimRight(cfg.WordPress.APIURL, "/")
	cfg.WordPress.SiteURL = strings.TrimRight(cfg.WordPress.SiteURL, "/")
	cfg.Cache.Type = strings.ToLower(cfg.Cache.Type)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	return cfg, nil
}

// LoadFromEnv loads configuration without a config file
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("wordpress.api_url", "https://admin.insights.ubuntu.com/wp-json/wp/v2")
	v.SetDefault("wordpress.site_url", "https://admin.insights.ubuntu.com")
	v.SetDefault("wordpress.timeout", 30*time.Second)
	v.SetDefault("wordpress.user_agent", "BlogViews/1.0")
	v.SetDefault("wordpress.rate_limit", 10.0)
	v.SetDefault("wordpress.burst", 20)
	v.SetDefault("wordpress.retries", 3)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.color_ttl", 24*time.Hour)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", "blog:")
	v.SetDefault("cache.memory.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.sqlite.path", "blog-cache.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("context.concurrency", 8)
	v.SetDefault("context.related_articles", 3)
	v.SetDefault("context.excerpt_length", 0)

	v.SetDefault("features.image_colors", false)
	v.SetDefault("features.response_cache", true)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateURL("wordpress api url", c.WordPress.APIURL); err != nil {
		return err
	}
	if err := validateURL("wordpress site url", c.WordPress.SiteURL); err != nil {
		return err
	}

	if c.WordPress.Timeout <= 0 {
		return errors.New("wordpress timeout must be positive")
	}
	if c.WordPress.RateLimit < 0 {
		return errors.New("wordpress rate limit cannot be negative")
	}
	if c.WordPress.RateLimit > 0 && c.WordPress.Burst < 1 {
		return errors.New("wordpress burst must be at least 1 when rate limiting")
	}
	if c.WordPress.Retries < 0 {
		return errors.New("wordpress retries cannot be negative")
	}

	if !validCacheTypes[c.Cache.Type] {
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'none'")
	}
	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}
	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache ttl cannot be negative")
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("log format must be 'text' or 'json', got %q", c.Logging.Format)
	}

	if c.Context.Concurrency < 1 {
		return errors.New("context concurrency must be at least 1")
	}
	if c.Context.RelatedArticles < 1 {
		return errors.New("related articles must be at least 1")
	}
	if c.Context.ExcerptLength < 0 {
		return errors.New("excerpt length cannot be negative")
	}

	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
