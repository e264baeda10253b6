package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/undostack/internal/script"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml|->",
		Short: "Run a YAML edit script against a card history",
		Long: `Run a YAML edit script and print the card after every step.

Example script:

  name: rename
  initial:
    text: Bob
  steps:
    - op: edit
      label: Rename
      fields:
        text: Robert
    - op: undo
    - op: redo

Ops: record, set, edit, undo, redo, clear, print. set and edit need fields;
edit records the card first, set does not. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScript(cmd, args[0])
			if err != nil {
				return err
			}

			return runScript(cmd, opts, sc)
		},
	}
}

func loadScript(cmd *cobra.Command, path string) (*script.Script, error) {
	if path == "-" {
		return script.Read(cmd.InOrStdin())
	}

	return script.Load(path)
}
