package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <button>",
		Short: "Display all fields of a button",
		Long: `Display every stored field of one button, plus how the bar would
resolve its icon and colors.

Examples:
  # Show the hub button
  lumi show lumi-hub

  # Show the second button as YAML
  lumi show 2 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	e := ctx.OpenEditor()
	b, err := cli.ResolveButton(e, args[0])
	if err != nil {
		return err
	}
	def := b.Definition()

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, def)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Button: %s\n", def.DisplayName())
	fmt.Fprintf(out, "ID: %s\n", def.ID)
	fmt.Fprintf(out, "Position: %d of %d\n", def.Order+1, e.Len())
	fmt.Fprintln(out, strings.Repeat("-", 40))

	icon := bar.DefaultIcons().Resolve(def.IconKey)
	colors := bar.HexColors{}

	for _, field := range models.EditableFields {
		value := def.FieldValue(field)
		note := ""
		switch field {
		case models.FieldIconKey:
			if icon.IsZero() {
				note = "(no icon)"
			} else {
				note = icon.Glyph
			}
		case models.FieldFillColor, models.FieldHoverColor, models.FieldPressedColor:
			if _, err := colors.Resolve(value); err != nil {
				note = "(invalid)"
			} else {
				value = cli.Swatch(value)
			}
		}
		fmt.Fprintf(out, "%-14s %s %s\n", field+":", value, note)
	}

	return nil
}
