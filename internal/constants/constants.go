// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName    = "vault"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort     = "3000"
	DefaultLogLevel = "info"

	// Persistent store defaults
	DefaultStorePath = "./vault.db"

	// Persisted cache keys are namespaced so Clear never touches
	// unrelated data in a shared store
	CacheNamespace = "vault_cache_"

	// Rate limiting for metadata APIs (requests per second, burst)
	MetadataRateLimit = 10
	MetadataRateBurst = 4

	// Unified search keeps the top N results per domain before merging
	SearchResultsPerDomain = 5

	// Watch history is a bounded, most-recent-first list
	WatchHistoryLimit = 100
)
