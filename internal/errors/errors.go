// Package errors defines custom error types for upstream fetch failures.
// FetchError provides context-aware error reporting with type classification.
package errors

import (
	"fmt"
)

// FetchError represents errors that occur while fetching or decoding
// upstream content.
type FetchError struct {
	Type    string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeHTTPStatus     = "HTTP_STATUS"
	ErrorTypeTransport      = "TRANSPORT"
	ErrorTypeTimeout        = "TIMEOUT"
	ErrorTypeDecode         = "DECODE"
	ErrorTypeRetryExhausted = "RETRY_EXHAUSTED"
	ErrorTypePersistence    = "PERSISTENCE"
)

// NewFetchError creates a new FetchError
func NewFetchError(errorType, message string, cause error) *FetchError {
	return &FetchError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewStatusError reports a non-2xx upstream response.
func NewStatusError(url string, status int) *FetchError {
	return NewFetchError(ErrorTypeHTTPStatus, fmt.Sprintf("request to %s failed with status %d", url, status), nil)
}

// NewTransportError reports a network-level failure.
func NewTransportError(url string, cause error) *FetchError {
	return NewFetchError(ErrorTypeTransport, fmt.Sprintf("request to %s failed", url), cause)
}

// NewDecodeError reports an unparseable upstream body.
func NewDecodeError(url string, cause error) *FetchError {
	return NewFetchError(ErrorTypeDecode, fmt.Sprintf("invalid JSON from %s", url), cause)
}

// NewRetryExhaustedError reports that all attempts against one URL failed.
func NewRetryExhaustedError(url string, attempts int, cause error) *FetchError {
	return NewFetchError(ErrorTypeRetryExhausted, fmt.Sprintf("%d attempts against %s failed", attempts, url), cause)
}
