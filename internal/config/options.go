package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
)

// RedoPolicy returns the parsed history redo policy.
func (c *Config) RedoPolicy() (history.RedoPolicy, error) {
	policy, err := history.ParseRedoPolicy(c.History.RedoPolicy)
	if err != nil {
		return history.RedoClear, fmt.Errorf("%w: %q", ErrInvalidRedoPolicy, c.History.RedoPolicy)
	}

	return policy, nil
}

// HistoryOptions translates history settings into controller options.
func (c *Config) HistoryOptions() ([]history.Option, error) {
	policy, err := c.RedoPolicy()
	if err != nil {
		return nil, err
	}

	return []history.Option{
		history.WithRedoPolicy(policy),
		history.WithMaxDepth(c.History.MaxDepth),
	}, nil
}

// InitialCard returns the configured starting card.
func (c *Config) InitialCard() (card.State, error) {
	state := card.Default()

	fields := []card.Field{
		{Name: card.FieldText, Value: c.Card.Text},
		{Name: card.FieldBackground, Value: c.Card.Background},
		{Name: card.FieldSize, Value: strconv.Itoa(c.Card.Size)},
	}

	for _, f := range fields {
		err := state.Set(f.Name, f.Value)
		if err != nil {
			return card.State{}, fmt.Errorf("card.%s: %w", f.Name, err)
		}
	}

	return state, nil
}

// SlogLevel maps logging.level to a slog level. Unknown names map to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Observability builds an observability config for the given mode.
func (c *Config) Observability(mode observability.AppMode) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	obsCfg.PrometheusDump = c.Telemetry.MetricsDump
	obsCfg.LogLevel = c.SlogLevel()
	obsCfg.LogJSON = c.Logging.JSON

	return obsCfg
}
