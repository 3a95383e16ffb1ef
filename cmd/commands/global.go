package commands

import (
	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/editor"
)

// AddGlobalFlags registers the flags every subcommand reads
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolP("quiet", "q", false, "Suppress informational output")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringP("output", "o", "text", "Output format: text, json, yaml")
	flags.BoolP("yes", "y", false, "Skip confirmation prompts")
	flags.BoolP("verbose", "v", false, "Log at LUMI_LOG_LEVEL instead of warnings only")
}

// ApplyGlobalFlags validates the global flags and hands them to internal/cli
func ApplyGlobalFlags(cmd *cobra.Command) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	yes, _ := cmd.Flags().GetBool("yes")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cli.SetGlobalFlags(quiet, noColor, yes)
	cli.SetVerbose(verbose)

	output, _ := cmd.Flags().GetString("output")
	_, err := cli.ParseOutputFormat(output)
	return err
}

func outputFormat(cmd *cobra.Command) string {
	output, _ := cmd.Flags().GetString("output")
	format, err := cli.ParseOutputFormat(output)
	if err != nil {
		return string(cli.FormatText)
	}
	return string(format)
}

func openContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	return cli.NewCommandContext(cmd.ErrOrStderr())
}

// withButton loads the editor, resolves ref and runs fn. fn reports whether
// the change should be saved.
func withButton(cmd *cobra.Command, ref string, fn func(e *editor.Editor, b *editor.Button) (bool, error)) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	e := ctx.OpenEditor()
	b, err := cli.ResolveButton(e, ref)
	if err != nil {
		return err
	}

	save, err := fn(e, b)
	if err != nil || !save {
		return err
	}
	return e.Save()
}

// Register adds every subcommand to root
func Register(root *cobra.Command) {
	root.AddCommand(
		NewListCommand(),
		NewShowCommand(),
		NewAddCommand(),
		NewRemoveCommand(),
		NewMoveCommand(),
		NewSetCommand(),
		NewEnableCommand(),
		NewDisableCommand(),
		NewExportCommand(),
		NewEditCommand(),
		NewPathCommand(),
		NewDoctorCommand(),
		NewResetCommand(),
	)
}
