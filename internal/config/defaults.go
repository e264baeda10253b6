package config

import "github.com/Sumatoshi-tech/undostack/pkg/card"

// History defaults.
const (
	DefaultRedoPolicy = "clear"
	DefaultMaxDepth   = 0
)

// Card defaults.
const (
	DefaultCardText       = card.DefaultText
	DefaultCardBackground = card.DefaultBackground
	DefaultCardSize       = card.DefaultSize
)

// Output defaults.
const (
	DefaultOutputFormat   = FormatPlain
	DefaultOutputColor    = true
	DefaultOutputShowDiff = false
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false
)

// Telemetry defaults.
const (
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultMetricsDump  = false
)
