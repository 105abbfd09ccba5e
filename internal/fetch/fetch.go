// Package fetch implements the request executor: one outbound JSON call
// with a per-attempt timeout, bounded linear-backoff retry, a cache
// short-circuit, and lifecycle notifications. This is the only layer that
// returns errors to its callers; adapters above it absorb them.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vrickster/vault/internal/cache"
	"github.com/vrickster/vault/internal/constants"
	apperrors "github.com/vrickster/vault/internal/errors"
	"github.com/vrickster/vault/internal/events"
	"github.com/vrickster/vault/pkg/logger"
)

// Request describes one upstream call. MaxRetries counts additional
// attempts after the first; negative values are treated as zero.
type Request struct {
	URL        string
	Method     string // defaults to GET
	Headers    map[string]string
	Body       []byte
	CacheKey   string        // empty disables caching
	TTL        time.Duration // zero falls back to the default TTL
	MaxRetries int
}

// NewRequest builds a GET request with the default retry budget.
func NewRequest(url, cacheKey string, ttl time.Duration) Request {
	return Request{
		URL:        url,
		CacheKey:   cacheKey,
		TTL:        ttl,
		MaxRetries: constants.DefaultMaxRetries,
	}
}

// Executor issues requests against upstream APIs. Safe for concurrent use.
type Executor struct {
	client *http.Client
	cache  *cache.TTLCache
	bus    *events.Bus
	log    logger.Logger

	attemptTimeout time.Duration
	backoffBase    time.Duration
}

// New creates an executor with the standard timeout and backoff settings.
func New(client *http.Client, c *cache.TTLCache, bus *events.Bus, log logger.Logger) *Executor {
	return &Executor{
		client:         client,
		cache:          c,
		bus:            bus,
		log:            log,
		attemptTimeout: constants.AttemptTimeout,
		backoffBase:    constants.RetryBackoffBase,
	}
}

// SetBackoffBase overrides the linear backoff base. Used by tests to keep
// retry loops fast.
func (e *Executor) SetBackoffBase(d time.Duration) {
	e.backoffBase = d
}

// Do executes the request. A live cache entry is returned immediately with
// no network call and no notifications. Otherwise the call is attempted up
// to MaxRetries+1 times, waiting backoffBase*attempt between attempts, and
// the parsed body is cached on success. Exhausted retries surface as a
// RETRY_EXHAUSTED error after an error notification.
func (e *Executor) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.CacheKey != "" {
		if payload, ok := e.cache.Get(req.CacheKey); ok {
			return payload, nil
		}
	}

	resource := req.CacheKey
	if resource == "" {
		resource = req.URL
	}
	e.bus.Loading(resource)

	if req.MaxRetries < 0 {
		req.MaxRetries = 0
	}
	attempts := req.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		payload, err := e.attempt(ctx, req)
		if err == nil {
			if req.CacheKey != "" {
				ttl := req.TTL
				if ttl <= 0 {
					ttl = constants.DefaultTTL
				}
				e.cache.Set(req.CacheKey, payload, ttl)
			}
			e.bus.Success(resource)
			return payload, nil
		}

		lastErr = err
		e.log.Warnf("[Fetch] attempt %d/%d for %s failed: %v", attempt, attempts, req.URL, err)

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(e.backoffBase * time.Duration(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
			attempt = attempts
		}
	}

	err := apperrors.NewRetryExhaustedError(req.URL, attempts, lastErr)
	e.bus.Error(resource, err)
	return nil, err
}

// attempt performs a single HTTP round trip under the per-attempt deadline.
func (e *Executor) attempt(ctx context.Context, req Request) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewStatusError(req.URL, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(req.URL, err)
	}
	if !json.Valid(payload) {
		return nil, apperrors.NewDecodeError(req.URL, nil)
	}

	return json.RawMessage(payload), nil
}
