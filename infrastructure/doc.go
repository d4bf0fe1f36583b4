// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by patrickmn/go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: Persistent SQLite cache
// - http/standard: Standard library HTTP client with retries, rate limiting and request logging
// - logger/structured: logrus logger with optional rotating files
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "wp:/users/7", userJSON, 5*time.Minute)
//	value, err := cache.Get(ctx, "wp:/users/7")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "blog:",
//	})
//
// SQLite Cache Example:
//
//	cache, err := sqlite.NewSQLiteCache("blog-cache.db")
//	defer cache.Close()
//
// # HTTP Client
//
// The HTTP client retries transient failures and can be rate limited:
//
//	client := standard.NewHTTPClient(standard.Options{
//	    Timeout:    30 * time.Second,
//	    MaxRetries: 2,
//	    RateLimit:  10,
//	    Burst:      20,
//	    Logger:     logger,
//	})
//	resp, err := client.Get(ctx, "https://example.com/wp-json/wp/v2/posts")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger, err := structured.New(structured.Options{Level: "debug", Format: "json"})
//	logger.Info("Built index context", map[string]interface{}{
//	    "page":     2,
//	    "articles": 12,
//	})
package infrastructure
