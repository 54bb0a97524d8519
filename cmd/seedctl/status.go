package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show when each seeder last completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := connect(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		history, err := migrationManager(cfg, store).SeedHistory(cmd.Context())
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no seeder has run yet")
			return nil
		}
		for _, r := range history {
			fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", r.Name, r.AppliedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
