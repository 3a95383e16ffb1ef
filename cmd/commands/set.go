package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/models"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <button> <field> <value>",
		Short: "Change one field of a button",
		Long: `Change one field of a button and save.

Fields:
  ` + strings.Join(models.EditableFields, ", ") + `

Colors must be hex (#rgb or #rrggbb). Enabled accepts true/false,
yes/no, on/off or 1/0. Setting a field to its current value does
not rewrite the file.

Examples:
  # Rename the label of the first button
  lumi set 1 label "Start"

  # Change a color
  lumi set lumi-hub fill-color "#2F8E56"

  # Bind an action
  lumi set "Neuer Button" action_id open_mail`,
		Args: cobra.ExactArgs(3),
		RunE: runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	field, err := cli.ValidateFieldValue(args[1], args[2])
	if err != nil {
		return err
	}

	var name string
	var changed bool
	err = withButton(cmd, args[0], func(e *editor.Editor, b *editor.Button) (bool, error) {
		name = b.Definition().DisplayName()
		if err := b.SetField(field, args[2]); err != nil {
			return false, err
		}
		changed = e.IsDirty()
		return changed, nil
	})
	if err != nil {
		return err
	}

	if !changed {
		cli.PrintInfo("%s of '%s' is already %q", field, name, args[2])
		return nil
	}
	cli.PrintSuccess("Set %s of '%s' to %q", field, name, args[2])
	return nil
}
