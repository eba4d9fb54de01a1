package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/core"
	"github.com/mantellamod/launcher/internal/launcher"
	"github.com/mantellamod/launcher/internal/scripting"
)

func NewScriptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua automation script against the supervisor",
		Long: `Execute a Lua script with the supervisor exposed as a global table named
after the companion (lowercased). The table offers restart(), which performs
a launch-or-restart cycle, and running(), which probes the process table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config
			sup, cleanup := buildSupervisor()
			defer cleanup()

			sys := launcher.NewSystem()
			loc := launcher.NewLocator(sys)
			running := func() bool {
				handles := loc.FindRunning(cfg.Executable)
				for _, h := range handles {
					h.Close()
				}
				return len(handles) > 0
			}

			name := strings.ToLower(cfg.AppName)
			return scripting.RunFile(args[0], name, sup, running)
		},
	}
}
