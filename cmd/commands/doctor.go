package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/bar"
	"github.com/lumi/lumi-bar/pkg/models"
	"github.com/lumi/lumi-bar/pkg/store"
)

// Finding is one diagnostic about the configuration file
type Finding struct {
	Button  string `json:"button,omitempty" yaml:"button,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// DoctorResult is the output of the doctor command
type DoctorResult struct {
	Path     string    `json:"path" yaml:"path"`
	Exists   bool      `json:"exists" yaml:"exists"`
	Size     int64     `json:"size,omitempty" yaml:"size,omitempty"`
	Modified time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
	Buttons  int       `json:"buttons" yaml:"buttons"`
	Problems []Finding `json:"problems" yaml:"problems"`
	Warnings []Finding `json:"warnings" yaml:"warnings"`
}

// NewDoctorCommand creates the doctor command
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration file",
		Long: `Check the configuration file without changing it.

Problems make the command exit non-zero:
  - the file cannot be parsed or has no buttons (the app uses defaults)
  - duplicate button IDs
  - colors that are not valid hex

Warnings are reported but do not fail:
  - order values that are not 0..N-1 (fixed on the next save)
  - buttons without an ID (one is assigned, and kept on the next save)
  - icon keys or actions the bar does not know

Examples:
  lumi doctor
  lumi doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}

	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	result := diagnose(ctx.Store)

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		if err := cli.OutputResults(cmd.OutOrStdout(), format, result); err != nil {
			return err
		}
	default:
		outputDoctorText(result)
	}

	if n := len(result.Problems); n > 0 {
		return fmt.Errorf("found %d problem(s) in %s", n, result.Path)
	}
	return nil
}

func diagnose(s *store.Store) DoctorResult {
	result := DoctorResult{Path: s.Path(), Exists: s.Exists()}
	if info, err := os.Stat(s.Path()); err == nil {
		result.Size = info.Size()
		result.Modified = info.ModTime()
	}
	problem := func(button, format string, args ...interface{}) {
		result.Problems = append(result.Problems, Finding{Button: button, Message: fmt.Sprintf(format, args...)})
	}
	warning := func(button, format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, Finding{Button: button, Message: fmt.Sprintf(format, args...)})
	}

	cfg, err := s.Load()
	var parseErr *store.ParseError
	switch {
	case errors.Is(err, store.ErrNotFound):
		warning("", "file does not exist yet, built-in defaults will be written on first start")
		return result
	case errors.As(err, &parseErr):
		problem("", "cannot parse file, built-in defaults are used instead: %v", parseErr.Err)
		return result
	case errors.Is(err, store.ErrEmptyConfig):
		problem("", "file has no buttons, built-in defaults are used instead")
		return result
	case err != nil:
		problem("", "cannot read file: %v", err)
		return result
	}
	result.Buttons = len(cfg.Buttons)

	if raw, err := rawButtons(s.Path()); err == nil {
		for i, def := range raw {
			if def.Order != i {
				warning("", "order values are not 0..%d, they will be normalized on the next save", len(raw)-1)
				break
			}
		}
		for i, def := range raw {
			if def.ID == "" {
				warning(fmt.Sprintf("#%d", i+1), "button has no ID, a new one is assigned on load and written on the next save")
			}
		}
	}

	seen := make(map[string]bool)
	for _, def := range cfg.Buttons {
		if seen[def.ID] {
			problem(def.ID, "duplicate ID")
		}
		seen[def.ID] = true
	}

	icons := bar.DefaultIcons()
	actions := builtinActions()
	for _, def := range cfg.Buttons {
		if icons.Resolve(def.IconKey).IsZero() {
			warning(def.ID, "unknown icon %q, the button shows no icon", def.IconKey)
		}
		if def.ActionID == "" {
			warning(def.ID, "no action, pressing the button does nothing")
		} else if !actions.Known(def.ActionID) {
			warning(def.ID, "unknown action %q, pressing the button does nothing", def.ActionID)
		}
	}

	colors := bar.HexColors{}
	for _, def := range cfg.Buttons {
		for _, field := range []string{models.FieldFillColor, models.FieldHoverColor, models.FieldPressedColor} {
			if _, err := colors.Resolve(def.FieldValue(field)); err != nil {
				problem(def.ID, "%s: %v", field, err)
			}
		}
	}

	return result
}

// rawButtons reads the buttons as stored, before normalization and ID assignment
func rawButtons(path string) ([]models.ButtonDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw models.Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Buttons, nil
}

// builtinActions knows the actions the app itself provides
func builtinActions() *bar.ActionRegistry {
	reg := bar.NewActionRegistry()
	for _, id := range []string{models.OpenHubAction, models.ManageButtonAction} {
		reg.Register(id, nil)
	}
	return reg
}

func outputDoctorText(result DoctorResult) {
	if result.Exists {
		cli.PrintInfo("Checked %s (%d button(s), %s, saved %s)", result.Path, result.Buttons,
			humanize.Bytes(uint64(result.Size)), humanize.Time(result.Modified))
	} else {
		cli.PrintInfo("Checked %s", result.Path)
	}

	for _, f := range result.Warnings {
		cli.PrintWarning("%s", formatFinding(f))
	}
	for _, f := range result.Problems {
		cli.PrintError("%s", formatFinding(f))
	}

	if len(result.Problems) == 0 && len(result.Warnings) == 0 {
		cli.PrintSuccess("No problems found")
	}
}

func formatFinding(f Finding) string {
	if f.Button == "" {
		return f.Message
	}
	return f.Button + ": " + f.Message
}
