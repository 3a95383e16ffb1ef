package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/lumi/lumi-bar/internal/config"
	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/signals"
	"github.com/lumi/lumi-bar/pkg/store"
)

// CommandContext carries what every subcommand needs: settings, logger and
// the store for the configured file
type CommandContext struct {
	Config config.Config
	Logger *slog.Logger
	Hub    *signals.Hub
	Store  *store.Store
}

// NewCommandContext reads the environment and opens the store. Logs go to
// logOut; below warning level only with --verbose.
func NewCommandContext(logOut io.Writer) (*CommandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := cfg
	if !verbose && logCfg.LogLevel < slog.LevelWarn {
		logCfg.LogLevel = slog.LevelWarn
	}
	logger := logCfg.NewLogger(logOut)
	hub := signals.NewHub(signals.WithPreviewDelay(cfg.PreviewDelay), signals.WithLogger(logger))

	return &CommandContext{
		Config: cfg,
		Logger: logger,
		Hub:    hub,
		Store:  store.New(cfg.Path(), hub, store.WithLogger(logger)),
	}, nil
}

// OpenEditor loads the button list for a load, mutate, save cycle
func (c *CommandContext) OpenEditor() *editor.Editor {
	return editor.New(c.Store, c.Hub, editor.WithLogger(c.Logger))
}

// Close releases the hub
func (c *CommandContext) Close() {
	c.Hub.Close()
}

// ResolveButton finds a button by ID, 1-based position, unique ID prefix or
// unique case-insensitive name, in that order
func ResolveButton(e *editor.Editor, ref string) (*editor.Button, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("button reference must not be empty")
	}

	if b, ok := e.Find(ref); ok {
		return b, nil
	}

	if pos, err := strconv.Atoi(ref); err == nil {
		if b := e.At(pos - 1); b != nil {
			return b, nil
		}
		return nil, fmt.Errorf("no button at position %d (have %d)", pos, e.Len())
	}

	var byPrefix []*editor.Button
	for _, b := range e.Buttons() {
		if strings.HasPrefix(b.ID(), ref) {
			byPrefix = append(byPrefix, b)
		}
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return nil, fmt.Errorf("multiple buttons match '%s'. Use a longer ID", ref)
	}

	var byName []*editor.Button
	for _, b := range e.Buttons() {
		if strings.EqualFold(b.Name(), ref) {
			byName = append(byName, b)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
		return nil, fmt.Errorf("button '%s' not found. Run 'lumi list' to see available buttons", ref)
	default:
		return nil, fmt.Errorf("multiple buttons named '%s'. Use the ID instead", ref)
	}
}

// EditorLauncher opens files in the user's editor
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor and waits for it to exit
func (e *EditorLauncher) OpenFile(path string) error {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
