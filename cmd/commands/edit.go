package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration file in your editor",
		Long: `Open the configuration file in your default editor ($EDITOR).

The file is created with the built-in defaults if it does not exist.
After the editor exits the file is checked as with 'lumi doctor'.
A running bar picks the change up automatically.

Examples:
  # Edit with the default editor
  lumi edit

  # Edit with a specific editor
  EDITOR=vim lumi edit`,
		Args: cobra.NoArgs,
		RunE: runEdit,
	}

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	ctx.Store.LoadOrCreateDefault()

	launcher := cli.NewEditorLauncher()
	cli.PrintInfo("Opening %s in editor...", ctx.Store.Path())
	if err := launcher.OpenFile(ctx.Store.Path()); err != nil {
		return err
	}

	result := diagnose(ctx.Store)
	outputDoctorText(result)
	if n := len(result.Problems); n > 0 {
		return fmt.Errorf("found %d problem(s) after editing", n)
	}
	return nil
}
