// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Papersrc is the canonical application identifier used for filesystem paths and CLI branding.
	Papersrc = "papersrc"

	// Version is the current application semantic version string.
	Version = "0.3.2"

	// UserAgent is the default HTTP User-Agent string used for requests to content sources.
	UserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_4_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.4 Mobile/15E148 Safari/604.1"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
