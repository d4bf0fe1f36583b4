// ABOUTME: Context builder configuration for service-level control of optional behaviour
// ABOUTME: Provides functional options independent of how the application is configured

package config

// ContextConfig controls how view contexts are assembled
type ContextConfig struct {
	// Concurrency bounds the number of in-flight lookups per context
	Concurrency int

	// RelatedArticles is how many related posts an article page asks for
	RelatedArticles int

	// ExcerptLength truncates plain-text excerpts to this many runes; 0 keeps them whole
	ExcerptLength int

	// ImageColors enables prominent color extraction for featured images
	ImageColors bool
}

// DefaultContextConfig returns the default configuration
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		Concurrency:     8,
		RelatedArticles: 3,
		ExcerptLength:   0,
		ImageColors:     false,
	}
}

// ContextOption is a functional option for configuring context assembly
type ContextOption func(*ContextConfig)

// WithConcurrency sets the lookup concurrency; values below 1 are ignored
func WithConcurrency(n int) ContextOption {
	return func(c *ContextConfig) {
		if n > 0 {
			c.Concurrency = n
		}
	}
}

// WithRelatedArticles sets how many related articles to request
func WithRelatedArticles(n int) ContextOption {
	return func(c *ContextConfig) {
		if n > 0 {
			c.RelatedArticles = n
		}
	}
}

// WithExcerptLength truncates excerpts to n runes
func WithExcerptLength(n int) ContextOption {
	return func(c *ContextConfig) {
		if n >= 0 {
			c.ExcerptLength = n
		}
	}
}

// WithImageColors enables or disables featured image color extraction
func WithImageColors(enabled bool) ContextOption {
	return func(c *ContextConfig) {
		c.ImageColors = enabled
	}
}

// NewContextConfig creates a configuration with the given options applied
// over the defaults
func NewContextConfig(opts ...ContextOption) ContextConfig {
	config := DefaultContextConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
