package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/undostack/internal/replay"
	"github.com/Sumatoshi-tech/undostack/internal/script"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in name-card undo/redo scenario",
		Long: `Run the built-in scenario on a name card:

  1. change text to "Alice" (recorded)
  2. change bg to "gradient(blue, purple)" (recorded)
  3. undo
  4. redo

The state is printed after every step. The initial card comes from the
card.* configuration keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScript(cmd, opts, script.Demo())
		},
	}
}

// runScript executes sc against a fresh controller and prints each report.
func runScript(cmd *cobra.Command, opts *GlobalOptions, sc *script.Script) (err error) {
	env, err := opts.bootstrap(observability.ModeCLI, cmd.ErrOrStderr())
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

	printer, err := env.newPrinter(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	runner := replay.NewRunner(ctrl, replay.Deps{
		Logger: env.logger(),
		Tracer: env.providers.Tracer,
	})

	err = runner.Run(cmd.Context(), sc, printer.Print)
	if err != nil {
		return err
	}

	env.logger().Debug("script finished",
		"script", sc.Name,
		"steps", len(sc.Steps),
		"undo_depth", ctrl.UndoDepth(),
		"redo_depth", ctrl.RedoDepth(),
	)

	return printer.Flush(ctrl.UndoDepth(), ctrl.RedoDepth())
}
