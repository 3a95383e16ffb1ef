package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/cmd/commands"
	"github.com/lumi/lumi-bar/internal/config"
	"github.com/lumi/lumi-bar/pkg/editor"
	"github.com/lumi/lumi-bar/pkg/signals"
	"github.com/lumi/lumi-bar/pkg/store"
	"github.com/lumi/lumi-bar/pkg/tui"
)

// version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lumi",
	Short: "Configure the buttons of the Lumi launcher bar",
	Long: `Lumi manages the buttons of the Lumi launcher bar. The configuration is a
plain YAML file; run without a subcommand to edit it in the interactive TUI
with a live preview of the bar.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.ApplyGlobalFlags(cmd)
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Lumi",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Lumi version %s\n", version)
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)
	commands.Register(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to bubbletea, so logs go to a file
	logFile, err := cfg.OpenLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	hub := signals.NewHub(
		signals.WithPreviewDelay(cfg.PreviewDelay),
		signals.WithLogger(logger),
	)
	defer hub.Close()

	st := store.New(cfg.Path(), hub, store.WithLogger(logger))
	ed := editor.New(st, hub, editor.WithLogger(logger))

	app := tui.NewApp(ed, tui.WithLogger(logger))
	p := tea.NewProgram(app, tea.WithAltScreen())

	disconnect := tui.Connect(hub, p)
	defer disconnect()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		err := st.Watch(ctx, store.DefaultWatchDebounce, func() {
			p.Send(tui.ExternalChangeMsg{})
		})
		if err != nil {
			logger.Warn("config watcher stopped", "error", err)
		}
	}()

	logger.Info("tui started", "config", st.Path(), "version", version)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
