// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Source Selection - these keys manage which content sources the CLI talks to by default.
const (
	DefaultSources = "sources.default"
)

// Network - these keys configure the request executor shared by every source.
const (
	NetworkRequestsPerSecond = "network.requests_per_second"
	NetworkTimeout           = "network.timeout"
	NetworkTLSFingerprint    = "network.tls_fingerprint"
)

// Storage - these keys configure where source settings and credentials are persisted.
const (
	StoreKeyringService = "store.keyring_service"
)

// Search Interaction - these keys define the parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Output - these keys control how records are printed.
const (
	OutputWrapWidth = "output.wrap_width"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags govern the non-interactive behavior.
const (
	CliColored = "cli.colored"
)
