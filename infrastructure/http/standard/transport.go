// ABOUTME: Logging round tripper that tags outbound requests with a request id
// ABOUTME: Records method, URL, status and timing for every content API call

package standard

import (
	"net/http"
	"time"

	"blog-views/core/interfaces"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to each outbound request
const RequestIDHeader = "X-Request-ID"

// LoggingTransport wraps a RoundTripper with request ids and logging
type LoggingTransport struct {
	next   http.RoundTripper
	logger interfaces.Logger
}

// NewLoggingTransport creates a logging transport around next
func NewLoggingTransport(next http.RoundTripper, logger interfaces.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Warn("Outbound request failed", map[string]interface{}{
			"request_id":  requestID,
			"method":      req.Method,
			"url":         req.URL.String(),
			"duration_ms": duration.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, err
	}

	t.logger.Debug("Outbound request completed", map[string]interface{}{
		"request_id":  requestID,
		"method":      req.Method,
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	})

	return resp, nil
}
