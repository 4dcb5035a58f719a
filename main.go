package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileboard/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		verbose     bool
		baseMonitor bool
	)

	cmd := &cobra.Command{
		Use:          "tileboard",
		Short:        "Drag and resize random photo tiles on a panel",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level, err := logLevel(cfg.LogLevel, verbose)
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, level)

			if baseMonitor {
				monitor, err := firstMonitor(ebiten.AppendMonitors(nil))
				if err != nil {
					return err
				}
				ebiten.SetMonitor(monitor)
			}
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
			ebiten.SetWindowTitle(cfg.Window.Title)

			game, err := NewGame(cmd.Context(), cfg, configPath, logger)
			if err != nil {
				return err
			}
			defer game.Close()

			logger.Info("starting", "endpoint", cfg.Endpoint, "config", configPath)
			if err := ebiten.RunGame(game); err != nil {
				logger.Error("game stopped", "err", err)
				return fmt.Errorf("run game: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a .yaml or .toml config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVarP(&baseMonitor, "monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	return cmd
}

var errNoMonitor = errors.New("no monitors found")

// firstMonitor returns the base monitor from a listing.
func firstMonitor(monitors []*ebiten.MonitorType) (*ebiten.MonitorType, error) {
	if len(monitors) == 0 {
		return nil, fmt.Errorf("monitor: %w", errNoMonitor)
	}
	return monitors[0], nil
}

// logLevel picks the logger level: --verbose wins over the config file.
func logLevel(name string, verbose bool) (log.Level, error) {
	if verbose {
		return log.DebugLevel, nil
	}
	if name == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}
