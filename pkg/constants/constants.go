// Package constants provides shared constants used throughout the herbarium codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the maintenance commands.
package constants

import "time"

// Timeout and pacing constants for outbound calls to external services
const (
	// MatchTimeout is the hard per-request timeout for external matching services.
	// A request that has not answered within this window is treated as no match.
	MatchTimeout = 4 * time.Second

	// LinkDelay is the minimum pause between successive external calls when
	// iterating a batch. It must never be zero during batch linking.
	LinkDelay = 1 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// MinConfidence is the acceptance threshold for external matches on the
// 0-100 confidence scale reported by matching services.
const MinConfidence = 80

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Corpus serialization constants
const (
	// JSONIndent is the indentation unit for corpus documents and index artifacts.
	JSONIndent = "  "

	// IndexVersion is the schema version stamped on generated index artifacts.
	IndexVersion = "1"
)

// UserAgent identifies herbarium to external HTTP services.
const UserAgent = "herbarium-kb (https://github.com/openherb/herbarium)"
