package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
)

var (
	exportToFile    string
	exportClipboard bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the button configuration",
		Long: `Export the button configuration to stdout, a file or the clipboard.

The output is YAML, the same format as the configuration file, unless
-o json is given. Order values are normalized.

Examples:
  # Export to stdout
  lumi export

  # Export as JSON to a file
  lumi export -o json --file buttons.json

  # Copy to the clipboard
  lumi export --clipboard`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "Copy to the system clipboard")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	cfg := ctx.Store.LoadOrCreateDefault()

	format := outputFormat(cmd)
	if format == string(cli.FormatText) {
		format = string(cli.FormatYAML)
	}

	var buf bytes.Buffer
	if err := cli.OutputResults(&buf, format, cfg); err != nil {
		return fmt.Errorf("failed to encode buttons: %w", err)
	}
	content := buf.String()

	if exportClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("%d button(s) copied to clipboard", len(cfg.Buttons))
		return nil
	}

	if exportToFile != "" {
		if err := os.WriteFile(exportToFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		cli.PrintSuccess("Exported %d button(s) to %s", len(cfg.Buttons), exportToFile)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
