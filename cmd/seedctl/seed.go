package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"upengage.io/seeder/internal/audit"
	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the default seeder chain or named seeders",
	Long: `Run seeders against the configured database.

Without --class the whole chain runs in order: teams, permissions, roles,
role permissions, divisions, production snapshots, then staging and
development data when the environment allows it, then the role and
language backfills. Every seeder can be re-run safely except replace
snapshots, which rewrite their tables and are meant for offline use.

Example:
  seedctl seed
  seedctl seed --env production
  seedctl seed --class permissions --class role_permissions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cfg, cfg.Fixtures)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := audit.WithRunID(cmd.Context(), ids.New())
		defer a.pushMetrics(ctx)

		classes, _ := cmd.Flags().GetStringSlice("class")
		out := cmd.OutOrStdout()
		if len(classes) == 0 {
			outcomes, err := a.runner.RunAll(ctx)
			printOutcomes(cmd, outcomes)
			return err
		}
		for _, name := range classes {
			outcome, err := a.runner.Run(ctx, name)
			if err != nil {
				return err
			}
			printOutcomes(cmd, []seeder.Outcome{outcome})
		}
		fmt.Fprintf(out, "environment %s done\n", cfg.Environment)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringSlice("class", nil, "Seeder to run instead of the full chain (repeatable)")
}

func printOutcomes(cmd *cobra.Command, outcomes []seeder.Outcome) {
	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		if o.Skipped {
			fmt.Fprintf(out, "%-32s skipped (%s)\n", o.Name, o.Tier)
			continue
		}
		fmt.Fprintf(out, "%-32s %s in %s\n", o.Name, o.Counts, o.Duration.Round(time.Millisecond))
	}
}
