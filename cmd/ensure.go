package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewEnsureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Launch the companion only if no instance is running",
		Long: `Launch the companion unless an instance is already present in the system
process table. Any process matching the executable name counts as running,
so an existing instance is always left in place. This is the session-start
entry point the host bridge uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, cleanup := buildSupervisor()
			defer cleanup()

			if !sup.LaunchIfAbsent() {
				return fmt.Errorf("companion launch failed")
			}
			return nil
		},
	}
}
