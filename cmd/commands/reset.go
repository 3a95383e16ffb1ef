package commands

import (
	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/models"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in buttons",
		Long: `Replace the configuration with the built-in defaults (Lumi Hub and
Buttons verwalten). All other buttons are lost.

This also repairs a configuration file the app cannot read.

Examples:
  lumi reset
  lumi reset -y`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	confirmed, err := cli.Confirm("Replace all buttons with the built-in defaults?", false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Reset cancelled")
		return nil
	}

	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.Store.Save(models.DefaultConfig()); err != nil {
		return err
	}

	cli.PrintSuccess("Restored %d built-in button(s) in %s", len(models.DefaultConfig().Buttons), ctx.Store.Path())
	return nil
}
