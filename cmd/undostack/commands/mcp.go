package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/undostack/internal/mcp"
	"github.com/Sumatoshi-tech/undostack/internal/session"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
	"github.com/Sumatoshi-tech/undostack/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server exposing the card history as tools",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server owns one editing session and exposes it as tools:
  - card_state:   current card and history depths
  - card_edit:    assign fields (recorded unless no_record is set)
  - card_record:  record a snapshot without changing the card
  - card_undo:    undo the last recorded change
  - card_redo:    redo the last undone change
  - card_history: inspect or clear the history

Logs are JSON on stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			env, err := opts.bootstrap(observability.ModeMCP, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defer func() {
				err = errors.Join(err, env.close(context.WithoutCancel(cmd.Context())))
			}()

			ctrl, err := env.newController()
			if err != nil {
				return err
			}

			toolMetrics, err := observability.NewToolMetrics(env.providers.Meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Session: session.New(ctrl),
				Version: version.Version,
				Logger:  env.logger(),
				Metrics: toolMetrics,
				Tracer:  env.providers.Tracer,
			})

			return srv.Run(cmd.Context())
		},
	}
}
