package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/core"
	"github.com/mantellamod/launcher/internal/launcher"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show running companion instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config
			sys := launcher.NewSystem()

			resolver := launcher.NewPathResolver(sys, cfg.AncestorDepth)
			if dir := resolver.ModuleDir(); dir != "" {
				fmt.Printf("Module directory:  %s\n", dir)
			}
			if dir := resolver.TopLevelDir(); dir != "" {
				fmt.Printf("Install root:      %s\n", dir)
			}

			handles := launcher.NewLocator(sys).FindRunning(cfg.Executable)
			if len(handles) == 0 {
				fmt.Printf("%s is not running\n", cfg.Executable)
				return nil
			}

			fmt.Printf("%s instances:\n", cfg.Executable)
			for _, h := range handles {
				alive, err := h.Alive()
				state := "running"
				if err != nil {
					state = "unknown"
				} else if !alive {
					state = "exiting"
				}
				fmt.Printf("  pid %-8d %s\n", h.Pid(), state)
				h.Close()
			}
			return nil
		},
	}
}
