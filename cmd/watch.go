package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/bridge"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch for the host's data-loaded signal",
		Long: `Run in the foreground watching the signal directory. When the host drops
its data-loaded marker, the companion is launched unless an instance is
already running. The signal is consumed once per session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, cleanup := buildSupervisor()
			defer cleanup()

			b, err := bridge.New(signalDir(), signalName(), sup.LaunchIfAbsent)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			slog.Info("Watching for host signal", "dir", signalDir(), "signal", signalName())
			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
