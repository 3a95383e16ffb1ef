package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/editor"
)

// NewRemoveCommand creates the remove command
func NewRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <button>",
		Short: "Remove a button",
		Long: `Permanently remove a button from the bar.

The button is referenced by ID, ID prefix, position (1-based) or name.
Consider 'lumi disable' if you might need the button later.

Examples:
  # Remove by position (with confirmation)
  lumi remove 3

  # Remove by name without confirmation
  lumi remove "Neuer Button" -y`,
		Aliases: []string{"rm", "delete"},
		Args:    cobra.ExactArgs(1),
		RunE:    runRemove,
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	var removed string

	err := withButton(cmd, args[0], func(e *editor.Editor, b *editor.Button) (bool, error) {
		removed = b.Definition().DisplayName()

		prompt := fmt.Sprintf("Permanently remove button '%s'?", removed)
		confirmed, err := cli.Confirm(prompt, false)
		if err != nil {
			return false, err
		}
		if !confirmed {
			cli.PrintInfo("Removal cancelled")
			removed = ""
			return false, nil
		}

		e.Select(b)
		e.Remove()
		return true, nil
	})
	if err != nil || removed == "" {
		return err
	}

	cli.PrintSuccess("Removed button '%s'", removed)
	return nil
}
