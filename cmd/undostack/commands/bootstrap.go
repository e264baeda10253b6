package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/undostack/internal/config"
	"github.com/Sumatoshi-tech/undostack/internal/render"
	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
	"github.com/Sumatoshi-tech/undostack/pkg/version"
)

// Standard OpenTelemetry environment variables honored when the config
// leaves telemetry unset.
const (
	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"
)

// runtimeEnv is everything a command needs after startup.
type runtimeEnv struct {
	cfg       *config.Config
	providers observability.Providers
	history   *observability.HistoryMetrics
	stderr    io.Writer
	noColor   bool
}

// bootstrap loads configuration, applies flag overrides and initializes
// observability for the given mode.
func (g *GlobalOptions) bootstrap(mode observability.AppMode, stderr io.Writer) (*runtimeEnv, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	g.applyOverrides(cfg)

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate flags: %w", err)
	}

	obsCfg := cfg.Observability(mode)
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogWriter = stderr
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))

	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv(envOTLPEndpoint)
	}

	if mode == observability.ModeMCP {
		obsCfg.LogJSON = true
	}

	if g.Verbose {
		obsCfg.DebugTrace = true
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	hm, err := observability.NewHistoryMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	return &runtimeEnv{
		cfg:       cfg,
		providers: providers,
		history:   hm,
		stderr:    stderr,
		noColor:   g.NoColor,
	}, nil
}

func (g *GlobalOptions) applyOverrides(cfg *config.Config) {
	if g.Format != "" {
		cfg.Output.Format = g.Format
	}

	if g.NoColor {
		cfg.Output.Color = false
	}

	if g.Metrics {
		cfg.Telemetry.MetricsDump = true
	}

	switch {
	case g.Verbose:
		cfg.Logging.Level = "debug"
	case g.Quiet:
		cfg.Logging.Level = "error"
	}
}

func (e *runtimeEnv) logger() *slog.Logger {
	return e.providers.Logger
}

// newController builds a card history controller from configuration.
func (e *runtimeEnv) newController() (*history.Controller[card.State], error) {
	initial, err := e.cfg.InitialCard()
	if err != nil {
		return nil, err
	}

	opts, err := e.cfg.HistoryOptions()
	if err != nil {
		return nil, err
	}

	opts = append(opts,
		history.WithLogger(e.providers.Logger),
		history.WithObserver(e.history),
	)

	return history.NewCloneable(initial, opts...), nil
}

// newPrinter builds a report printer for out.
func (e *runtimeEnv) newPrinter(out io.Writer) (*render.Printer, error) {
	return render.New(out, render.Options{
		Format:   e.cfg.Output.Format,
		Color:    e.cfg.Output.Color && !e.noColor && !color.NoColor,
		ShowDiff: e.cfg.Output.ShowDiff,
	})
}

// close writes the metrics dump when enabled and flushes telemetry.
func (e *runtimeEnv) close(ctx context.Context) error {
	var dumpErr error

	if e.cfg.Telemetry.MetricsDump {
		dumpErr = e.providers.WriteMetrics(e.stderr)
		if dumpErr != nil {
			dumpErr = fmt.Errorf("write metrics: %w", dumpErr)
		}
	}

	shutdownErr := e.providers.Shutdown(ctx)
	if shutdownErr != nil {
		e.logger().Warn("observability shutdown failed", "error", shutdownErr)
	}

	return dumpErr
}
