package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mosaicboard/mosaic/internal/app"
	"github.com/mosaicboard/mosaic/internal/config"
	"github.com/mosaicboard/mosaic/internal/logger"
)

var (
	configFile string
	logLevel   string
	readOnly   bool
	planTier   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mosaic [dashboard.yaml]",
		Short: "Terminal dashboard studio with live chart widgets",
		Long: `Mosaic is a terminal dashboard builder. Widgets live on a 12-column
grid: drag, resize, and edit them with the mouse or keyboard, and watch
configuration changes apply live through a debounced update pipeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "dashboard.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return run(path)
		},
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/mosaic/config.yaml)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&readOnly, "readonly", false, "open the dashboard without allowing edits")
	rootCmd.Flags().StringVar(&planTier, "plan", "", "plan tier override (free, pro, enterprise)")

	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

func run(path string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if planTier != "" {
		cfg.Plan = planTier
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	level := parseLevel(cfg.Log.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if err := logger.Init(level, cfg.Log.Path); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	model, err := app.New(cfg, path, readOnly)
	if err != nil {
		return fmt.Errorf("opening dashboard: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := finalModel.(*app.Model); ok {
		m.Cleanup()
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "mosaic: %v\n", err)
	os.Exit(1)
}
