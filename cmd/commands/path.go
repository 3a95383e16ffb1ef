package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
)

// PathResult lists the files the app uses
type PathResult struct {
	Config string `json:"config" yaml:"config"`
	Log    string `json:"log" yaml:"log"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// NewPathCommand creates the path command
func NewPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Long: `Print where the configuration file and the TUI log live.

The location is taken from LUMI_CONFIG_DIR and LUMI_CONFIG_FILE,
defaulting to the per-user configuration directory.

Examples:
  lumi path
  cat "$(lumi path)"
  lumi path -o json`,
		Args: cobra.NoArgs,
		RunE: runPath,
	}

	return cmd
}

func runPath(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	result := PathResult{
		Config: ctx.Store.Path(),
		Log:    ctx.Config.LogPath(),
		Exists: ctx.Store.Exists(),
	}

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), result.Config)
		return nil
	}
}
