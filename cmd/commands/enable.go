package commands

import (
	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/editor"
)

// NewDisableCommand creates the disable command
func NewDisableCommand() *cobra.Command {
	return newToggleCommand(false)
}

// NewEnableCommand creates the enable command
func NewEnableCommand() *cobra.Command {
	return newToggleCommand(true)
}

func newToggleCommand(enable bool) *cobra.Command {
	use, short, long := "disable <button>", "Hide a button from the bar", `Hide a button from the bar without removing it.

Disabled buttons keep their place and settings and can be shown
again with 'lumi enable'.

Examples:
  lumi disable 2
  lumi disable lumi-hub`
	if enable {
		use, short, long = "enable <button>", "Show a disabled button again", `Show a disabled button on the bar again.

Examples:
  lumi enable 2
  lumi enable lumi-hub`
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args[0], enable)
		},
	}
}

func runToggle(cmd *cobra.Command, ref string, enable bool) error {
	var name string
	var changed bool

	err := withButton(cmd, ref, func(e *editor.Editor, b *editor.Button) (bool, error) {
		name = b.Definition().DisplayName()
		b.SetEnabled(enable)
		changed = e.IsDirty()
		return changed, nil
	})
	if err != nil {
		return err
	}

	state := "disabled"
	if enable {
		state = "enabled"
	}
	if !changed {
		cli.PrintInfo("Button '%s' is already %s", name, state)
		return nil
	}
	cli.PrintSuccess("Button '%s' %s", name, state)
	return nil
}
