package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/search"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Path    string     `json:"path" yaml:"path"`
	Buttons []ListItem `json:"buttons" yaml:"buttons"`
	Count   int        `json:"count" yaml:"count"`
}

// ListItem represents a single button in the list
type ListItem struct {
	Position int    `json:"position" yaml:"position"`
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label" yaml:"label"`
	IconKey  string `json:"icon_key" yaml:"icon_key"`
	ActionID string `json:"action_id" yaml:"action_id"`
	Fill     string `json:"fill_color" yaml:"fill_color"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
}

var (
	listActiveOnly bool
	listFilter     string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured buttons",
		Long: `List the buttons of the Lumi Bar in display order.

Disabled buttons are listed too unless --active is given. If no
configuration file exists yet, the built-in defaults are written first.

Examples:
  # List all buttons
  lumi list

  # Only the buttons the bar shows
  lumi list --active

  # Filter with a query (fields: id, name, label, icon, action, color, enabled)
  lumi list --filter 'enabled:false OR action:open_hub'
  lumi list -f '"lumi hub"'

  # List as JSON
  lumi list -o json`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	cmd.Flags().BoolVarP(&listActiveOnly, "active", "a", false, "Show only enabled buttons")
	cmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Show only buttons matching a search query")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	cfg := ctx.Store.LoadOrCreateDefault()
	defs := cfg.Buttons
	if listActiveOnly {
		defs = cfg.Active()
	}

	// Positions stay those of the full list so they can be passed to other commands
	positions := make(map[string]int, len(cfg.Buttons))
	for i, def := range cfg.Buttons {
		positions[def.ID] = i + 1
	}

	defs, err = search.Filter(defs, listFilter)
	if err != nil {
		return err
	}

	result := ListResult{Path: ctx.Store.Path(), Buttons: make([]ListItem, 0, len(defs))}
	for _, def := range defs {
		result.Buttons = append(result.Buttons, listItem(positions[def.ID], def))
	}
	result.Count = len(result.Buttons)

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	default:
		return outputListText(cmd, result)
	}
}

func listItem(position int, def models.ButtonDefinition) ListItem {
	return ListItem{
		Position: position,
		ID:       def.ID,
		Name:     def.Name,
		Label:    def.Label,
		IconKey:  def.IconKey,
		ActionID: def.ActionID,
		Fill:     def.FillColor,
		Enabled:  def.Enabled,
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	out := cmd.OutOrStdout()

	if result.Count == 0 && listFilter != "" {
		fmt.Fprintln(out, "No buttons match the filter.")
		return nil
	}
	if result.Count == 0 {
		fmt.Fprintln(out, "No buttons configured.")
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("#", "ID", "NAME", "LABEL", "ICON", "ACTION", "FILL", "ENABLED")
	for _, item := range result.Buttons {
		table.Row(
			strconv.Itoa(item.Position),
			cli.TruncateString(item.ID, 12),
			cli.TruncateString(item.Name, 20),
			cli.TruncateString(item.Label, 12),
			cli.TruncateString(item.IconKey, 24),
			cli.TruncateString(item.ActionID, 24),
			cli.Swatch(item.Fill),
			cli.YesNo(item.Enabled),
		)
	}
	table.Flush()

	fmt.Fprintf(out, "\n%d button(s) in %s\n", result.Count, result.Path)
	return nil
}
