// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName names the config, data and cache directories.
const AppName = "osint-shell"

// Version is reported in the banner and the User-Agent header.
const Version = "2.0.0"

// Timeout constants used across the application
const (
	// DefaultAPITimeout bounds a single backend request, downloads included.
	DefaultAPITimeout = 60 * time.Second
	// DefaultCacheTTL is how long a cached backend response stays fresh.
	DefaultCacheTTL = 6 * time.Hour
)

// Application defaults
const (
	DefaultAPIURL   = "http://127.0.0.1:8750/api/v1"
	DefaultLogLevel = "warn"
	// DefaultLookupConcurrency caps parallel per-user lookups in the
	// follower email/number commands.
	DefaultLookupConcurrency = 8
	// MaxHistoryEntries caps the persisted interactive command history.
	MaxHistoryEntries = 500
)
