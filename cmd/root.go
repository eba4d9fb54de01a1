package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/core"
)

func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "mantella-launcher",
		Short: "Mantella Launcher - companion process supervisor",
		Long: `Mantella Launcher supervises the companion executable on behalf of the
game host: it keeps at most one instance running, redirects the companion's
temporary data away from cloud-synced folders, and restarts it on demand.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := core.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if verbose > 0 {
				cfg.Verbose = verbose
			}
			core.Config = cfg
			setupLogging(cfg.Verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config-path", core.DefaultConfigPath(),
		"config path",
	)
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "more output, repeat for even more")

	rootCmd.AddCommand(
		NewLaunchCommand(),
		NewEnsureCommand(),
		NewStatusCommand(),
		NewStopCommand(),
		NewHistoryCommand(),
		NewWatchCommand(),
		NewScriptCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// setupLogging installs the tint handler as the default structured logger.
func setupLogging(verbose int) {
	level := slog.LevelInfo
	if verbose > 0 {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	})
	slog.SetDefault(slog.New(handler))
}
