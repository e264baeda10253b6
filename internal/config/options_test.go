package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/undostack/internal/config"
	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
)

func validConfig() config.Config {
	return config.Config{
		History: config.HistoryConfig{RedoPolicy: "keep", MaxDepth: 2},
		Card:    config.CardConfig{Text: "Alice", Background: "red", Size: 20},
		Output:  config.OutputConfig{Format: config.FormatPlain},
		Logging: config.LoggingConfig{Level: "warn", JSON: true},
		Telemetry: config.TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			OTLPInsecure: true,
			MetricsDump:  true,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Output.Format = "TABLE"
	require.NoError(t, cfg.Validate())
}

func TestConfig_HistoryOptions(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	opts, err := cfg.HistoryOptions()
	require.NoError(t, err)

	ctrl := history.NewCloneable(card.Default(), opts...)
	assert.Equal(t, history.RedoKeep, ctrl.Policy())
	assert.Equal(t, 2, ctrl.MaxDepth())

	cfg.History.RedoPolicy = "bogus"

	_, err = cfg.HistoryOptions()
	require.ErrorIs(t, err, config.ErrInvalidRedoPolicy)
}

func TestConfig_InitialCard(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	state, err := cfg.InitialCard()
	require.NoError(t, err)
	assert.Equal(t, card.State{Text: "Alice", Background: "red", Size: 20}, state)

	cfg.Card.Size = -1

	_, err = cfg.InitialCard()
	require.ErrorIs(t, err, card.ErrInvalidSize)
}

func TestConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}

	for name, want := range levels {
		cfg := config.Config{Logging: config.LoggingConfig{Level: name}}
		assert.Equal(t, want, cfg.SlogLevel(), name)
	}
}

func TestConfig_Observability(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	obsCfg := cfg.Observability(observability.ModeMCP)

	assert.Equal(t, observability.ModeMCP, obsCfg.Mode)
	assert.Equal(t, "undostack", obsCfg.ServiceName)
	assert.Equal(t, "localhost:4317", obsCfg.OTLPEndpoint)
	assert.True(t, obsCfg.OTLPInsecure)
	assert.True(t, obsCfg.PrometheusDump)
	assert.True(t, obsCfg.LogJSON)
	assert.Equal(t, slog.LevelWarn, obsCfg.LogLevel)
}
