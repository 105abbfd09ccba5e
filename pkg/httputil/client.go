// Package httputil provides HTTP client constructors with standard configurations.
package httputil

import (
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	maxIdleConns        = 20
	maxIdleConnsPerHost = 4
	idleConnTimeout     = 60 * time.Second
)

// NewClient creates an HTTP client with the given overall timeout and a
// pooled transport. Per-attempt deadlines are applied by callers via context,
// so the client timeout only acts as a hard upper bound.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		},
	}
}

// NewDefaultClient creates an HTTP client with the default 30 second timeout.
func NewDefaultClient() *http.Client {
	return NewClient(defaultTimeout)
}
