package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mantellamod/launcher/internal/core"
	"github.com/mantellamod/launcher/internal/journal"
)

func NewHistoryCommand() *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent companion lifecycle events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config
			if cfg.JournalPath == "" {
				return fmt.Errorf("launch journal is disabled in the configuration")
			}

			j, err := journal.Open(cfg.JournalPath)
			if err != nil {
				return fmt.Errorf("failed to open launch journal: %w", err)
			}
			defer j.Close()

			events, err := j.Recent(limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No recorded events")
				return nil
			}

			for _, e := range events {
				fmt.Printf("%s  %-15s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.EventType, e.Details)
			}
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events to show")
	return historyCmd
}
