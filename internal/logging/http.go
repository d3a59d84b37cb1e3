package logging

import (
	"net/http"
	"strings"
	"time"
)

// Transport is an http.RoundTripper that logs every request and response at
// debug level. Session-bearing headers are redacted.
type Transport struct {
	wrapped http.RoundTripper
	logger  *Logger
}

// NewTransport wraps rt (http.DefaultTransport when nil) with request logging.
func NewTransport(rt http.RoundTripper, logger *Logger) *Transport {
	if rt == nil {
		rt = http.DefaultTransport
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return &Transport{wrapped: rt, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.logger.Debug("HTTP request", Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
	})

	resp, err := t.wrapped.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		t.logger.Error("HTTP error", err, Fields{
			"method":      req.Method,
			"url":         req.URL.String(),
			"duration_ms": duration.Milliseconds(),
		})
		return nil, err
	}

	t.logger.Debug("HTTP response", Fields{
		"url":            req.URL.String(),
		"status":         resp.StatusCode,
		"content_type":   resp.Header.Get("Content-Type"),
		"content_length": resp.ContentLength,
		"duration_ms":    duration.Milliseconds(),
	})
	return resp, nil
}

// redactHeaders flattens headers to their first value, hiding sensitive ones.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		switch {
		case isSensitiveHeader(k):
			out[k] = "[REDACTED]"
		case len(v) > 0:
			out[k] = v[0]
		}
	}
	return out
}

// isSensitiveHeader checks if a header should be redacted
func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "cookie", "set-cookie", "x-api-key", "x-auth-token", "x-csrftoken":
		return true
	}
	return false
}
