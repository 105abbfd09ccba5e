// Package constants defines timeout values and retry limits used throughout
// the application.
package constants

import "time"

const (
	// Per-attempt deadline inside the request executor
	AttemptTimeout = 10 * time.Second

	// Hard upper bound on any single upstream call, retries included
	RequestTimeout = 45 * time.Second

	// Base delay for the executor's linear backoff: attempt n waits n*base
	RetryBackoffBase = 1 * time.Second

	// Additional attempts after the first failure
	DefaultMaxRetries = 2
)
