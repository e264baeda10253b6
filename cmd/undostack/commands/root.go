// Package commands implements CLI command handlers for undostack.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/undostack/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	Format     string
	NoColor    bool
	Metrics    bool
}

// NewRootCommand creates the undostack command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "undostack",
		Short: "Undo/redo state history built on two stacks",
		Long: `undostack demonstrates linear undo/redo over full-state snapshots.

Commands:
  demo      Run the built-in name-card scenario
  replay    Run a YAML edit script
  mcp       Serve the card history as MCP tools over stdio
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default .undostack.yaml in CWD or $HOME)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "only log errors")
	flags.StringVar(&opts.Format, "format", "", "output format: plain, table, json or yaml")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics to stderr after the run")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewDemoCommand(opts))
	rootCmd.AddCommand(NewReplayCommand(opts))
	rootCmd.AddCommand(NewMCPCommand(opts))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "undostack %s\n", version.String())
		},
	}
}
