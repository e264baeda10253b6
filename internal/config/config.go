// Package config loads undostack settings from defaults, a YAML file, and
// UNDOSTACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/undostack/pkg/history"
)

// Sentinel validation errors.
var (
	ErrInvalidRedoPolicy = errors.New("invalid history redo policy")
	ErrInvalidMaxDepth   = errors.New("history max depth must not be negative")
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidCardSize   = errors.New("card size must not be negative")
)

// Output formats.
const (
	FormatPlain = "plain"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists every accepted output format.
var Formats = []string{FormatPlain, FormatTable, FormatJSON, FormatYAML}

var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the top-level configuration struct.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	History   HistoryConfig   `mapstructure:"history"`
	Card      CardConfig      `mapstructure:"card"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// HistoryConfig holds controller settings.
type HistoryConfig struct {
	// RedoPolicy is "clear" (new edits discard redo) or "keep".
	RedoPolicy string `mapstructure:"redo_policy"`
	// MaxDepth caps the undo stack; zero means unbounded.
	MaxDepth int `mapstructure:"max_depth"`
}

// CardConfig holds the initial card state.
type CardConfig struct {
	Text       string `mapstructure:"text"`
	Background string `mapstructure:"bg"`
	Size       int    `mapstructure:"size"`
}

// OutputConfig controls how states are printed.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	Color    bool   `mapstructure:"color"`
	ShowDiff bool   `mapstructure:"show_diff"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	MetricsDump  bool   `mapstructure:"metrics_dump"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := history.ParseRedoPolicy(c.History.RedoPolicy); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRedoPolicy, c.History.RedoPolicy)
	}

	if c.History.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.History.MaxDepth)
	}

	if c.Card.Size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCardSize, c.Card.Size)
	}

	if !slices.Contains(Formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidFormat, c.Output.Format, strings.Join(Formats, ", "))
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}
