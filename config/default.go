package config

import (
	"github.com/papersrc/papersrc/constant"
	"github.com/papersrc/papersrc/key"
)

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func register(k string, v any, description string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: description}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.DefaultSources, []string{"mangadex"}, "Sources used when a command is not given one.\nRun \"papersrc sources list\" to show available sources")

	register(key.NetworkRequestsPerSecond, 3, "Maximum number of requests per second sent to a single source")
	register(key.NetworkTimeout, 15, "Request timeout in seconds")
	register(key.NetworkTLSFingerprint, false, "Use a browser TLS fingerprint for sources behind anti-bot protection")

	register(key.StoreKeyringService, constant.Papersrc, "Keyring service name used for source credentials")

	register(key.SearchShowQuerySuggestions, true, "Remember searches and suggest them on completion")
	register(key.OutputWrapWidth, 0, "Wrap descriptions at this width.\n0 uses the terminal width")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
}
