// ABOUTME: Wires configuration into the logger, cache, HTTP client and view services
// ABOUTME: Mirrors how a web frontend would assemble the blog view dependencies

package main

import (
	"context"
	"fmt"
	"io"

	"blog-views/core/blog"
	coreconfig "blog-views/core/config"
	"blog-views/core/interfaces"
	"blog-views/core/services"
	"blog-views/core/wordpress"
	"blog-views/infrastructure/cache/memory"
	"blog-views/infrastructure/cache/redis"
	"blog-views/infrastructure/cache/sqlite"
	stdhttp "blog-views/infrastructure/http/standard"
	"blog-views/infrastructure/logger/structured"
	"blog-views/pkg/config"
	"blog-views/pkg/featureflags"
)

// app holds the services a command needs
type app struct {
	cfg     *config.Config
	logger  *structured.Logger
	cache   interfaces.Cache
	content *wordpress.Client
	views   *blog.Service
	closers []io.Closer
}

// newApp builds the application from configuration. Feature flags are read
// from the manager on ctx. Logs go to logOut unless a log file is configured.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger, err := structured.New(structured.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Output:     logOut,
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		closers: []io.Closer{logger},
	}

	if featureflags.IsEnabled(ctx, featureflags.ResponseCache) {
		a.cache, err = a.newCache()
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	httpClient := stdhttp.NewHTTPClient(stdhttp.Options{
		Timeout:    cfg.WordPress.Timeout,
		UserAgent:  cfg.WordPress.UserAgent,
		MaxRetries: cfg.WordPress.Retries,
		RateLimit:  cfg.WordPress.RateLimit,
		Burst:      cfg.WordPress.Burst,
		Logger:     logger,
	})

	deps := interfaces.Dependencies{
		Cache:      a.cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	a.content = wordpress.NewClient(deps,
		wordpress.WithAPIURL(cfg.WordPress.APIURL),
		wordpress.WithSiteURL(cfg.WordPress.SiteURL),
		wordpress.WithCacheTTL(cfg.Cache.TTL),
	)

	imageColors := featureflags.IsEnabled(ctx, featureflags.ImageColors)
	a.views = blog.NewService(a.content, logger,
		coreconfig.WithConcurrency(cfg.Context.Concurrency),
		coreconfig.WithRelatedArticles(cfg.Context.RelatedArticles),
		coreconfig.WithExcerptLength(cfg.Context.ExcerptLength),
		coreconfig.WithImageColors(imageColors),
	)
	if imageColors {
		a.views.SetImageColorService(services.NewImageColorService(deps, cfg.Cache.ColorTTL))
	}

	logger.Debug("blogctx configured", map[string]interface{}{
		"api_url":      cfg.WordPress.APIURL,
		"cache_type":   cfg.Cache.Type,
		"image_colors": imageColors,
	})

	return a, nil
}

// newCache creates the configured cache backend; "none" yields a nil cache
func (a *app) newCache() (interfaces.Cache, error) {
	cfg := a.cfg.Cache

	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCacheWithCleanup(cfg.Memory.CleanupInterval), nil
		}
		a.closers = append(a.closers, redisCache)
		a.logger.Debug("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, nil
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.SQLite.Path, a.logger, 0)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		a.closers = append(a.closers, sqliteCache)
		a.logger.Debug("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache, nil
	case "none":
		return nil, nil
	default:
		return memory.NewMemoryCacheWithCleanup(cfg.Memory.CleanupInterval), nil
	}
}

// Close releases caches and the log file in reverse order of creation
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
