package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/models"
)

var (
	addName     string
	addLabel    string
	addIcon     string
	addAction   string
	addFill     string
	addHover    string
	addPressed  string
	addDisabled bool
)

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new button",
		Long: `Append a new button to the end of the bar.

The button starts with the built-in defaults ("Neuer Button", the
tdesign_add icon, blue colors, enabled). Flags override single fields.

Examples:
  # Add a default button
  lumi add

  # Add a labelled button bound to an action
  lumi add --name "Mail" --label "Mail" --action open_mail

  # Add a disabled button with custom colors
  lumi add --fill "#C93A3A" --hover "#E14B4B" --pressed "#8F1D1D" --disabled`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addName, "name", "", "Button name")
	cmd.Flags().StringVar(&addLabel, "label", "", "Text shown under the icon")
	cmd.Flags().StringVar(&addIcon, "icon", "", "Icon key")
	cmd.Flags().StringVar(&addAction, "action", "", "Action identifier")
	cmd.Flags().StringVar(&addFill, "fill", "", "Fill color (hex)")
	cmd.Flags().StringVar(&addHover, "hover", "", "Hover color (hex)")
	cmd.Flags().StringVar(&addPressed, "pressed", "", "Pressed color (hex)")
	cmd.Flags().BoolVar(&addDisabled, "disabled", false, "Add the button disabled")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	overrides := []struct {
		flag  string
		field string
		value string
	}{
		{"name", models.FieldName, addName},
		{"label", models.FieldLabel, addLabel},
		{"icon", models.FieldIconKey, addIcon},
		{"action", models.FieldActionID, addAction},
		{"fill", models.FieldFillColor, addFill},
		{"hover", models.FieldHoverColor, addHover},
		{"pressed", models.FieldPressedColor, addPressed},
	}

	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if _, err := cli.ValidateFieldValue(o.field, o.value); err != nil {
			return fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	e := ctx.OpenEditor()
	b := e.Add()
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			if err := b.SetField(o.field, o.value); err != nil {
				return err
			}
		}
	}
	if addDisabled {
		b.SetEnabled(false)
	}

	if err := e.Save(); err != nil {
		return err
	}

	cli.PrintSuccess("Added button '%s' at position %d", b.Definition().DisplayName(), b.Order()+1)
	fmt.Fprintln(cmd.OutOrStdout(), b.ID())
	return nil
}
