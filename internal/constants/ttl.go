package constants

import "time"

// Cache lifetimes per entity class. Streaming sources carry signed URLs
// that expire upstream, so they get a much shorter TTL than metadata.
const (
	TTLTrending     = 1 * time.Hour
	TTLSearch       = 30 * time.Minute
	TTLDetails      = 2 * time.Hour
	TTLSources      = 15 * time.Minute
	TTLChapterPages = 1 * time.Hour

	DefaultTTL = 1 * time.Hour
)
