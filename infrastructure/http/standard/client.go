// ABOUTME: Standard HTTP client implementation with retry logic, rate limiting and timeout support
// ABOUTME: Provides HTTP functionality with exponential backoff for resilient content API calls

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	coreerrors "blog-views/core/errors"
	"blog-views/core/interfaces"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxRetries is how many times a failed request is retried
	DefaultMaxRetries = 2

	// DefaultUserAgent identifies outbound requests
	DefaultUserAgent = "BlogViews/1.0"

	baseBackoff = 100 * time.Millisecond
)

// Options configures a StandardHTTPClient
type Options struct {
	Timeout   time.Duration
	UserAgent string

	// MaxRetries is how many times a request failing with a network error,
	// a 5xx or a 429 status is retried
	MaxRetries int

	// RateLimit is the sustained requests per second; 0 disables limiting
	RateLimit float64
	Burst     int

	// Logger receives one debug entry per outbound request when set
	Logger interfaces.Logger

	// Transport overrides http.DefaultTransport
	Transport http.RoundTripper
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// NewHTTPClient creates a new HTTP client from options
func NewHTTPClient(opts Options) *StandardHTTPClient {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if opts.Logger != nil {
		transport = NewLoggingTransport(transport, opts.Logger)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		limiter:    limiter,
		userAgent:  userAgent,
		maxRetries: maxRetries,
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml;q=0.9, */*;q=0.8")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := baseBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit: %w", err)
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		failure := &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			API:        req.URL.Host,
		}
		if !failure.Retryable() || attempt == c.maxRetries {
			break
		}

		lastErr = failure
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
