package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/core"
	"github.com/mantellamod/launcher/internal/launcher"
)

func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Terminate all running companion instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config
			sys := launcher.NewSystem()

			handles := launcher.NewLocator(sys).FindRunning(cfg.Executable)
			if len(handles) == 0 {
				fmt.Printf("%s is not running\n", cfg.Executable)
				return nil
			}

			stopped := 0
			for _, h := range handles {
				if err := h.Terminate(); err != nil {
					slog.Warn("Failed to terminate instance", "pid", h.Pid(), "error", err)
					h.Close()
					continue
				}
				h.Wait()
				h.Close()
				stopped++
			}

			fmt.Printf("Stopped %d of %d %s instance(s)\n", stopped, len(handles), cfg.Executable)
			if stopped != len(handles) {
				return fmt.Errorf("some instances could not be terminated")
			}
			return nil
		},
	}
}
