package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewLaunchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Launch or restart the companion",
		Long: `Launch the companion executable, terminating any instance the launcher
already tracks first. This is the on-demand restart entry point: it always
ends in a fresh launch attempt.`,
		Aliases: []string{"restart"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, cleanup := buildSupervisor()
			defer cleanup()

			if !sup.LaunchOrRestart() {
				return fmt.Errorf("companion launch failed")
			}
			return nil
		},
	}
}
