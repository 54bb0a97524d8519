package main

import (
	"github.com/spf13/cobra"

	"upengage.io/seeder/internal/audit"
	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/seeder"
)

var fakeCmd = &cobra.Command{
	Use:   "fake",
	Short: "Generate many financers and users for load testing",
	Long: `Generate financers with realistic users and financer_user rows.

Only allowed where development data is enabled. Rows are inserted in chunks
and tagged as demo. Run the seed chain afterwards to backfill roles.

Example:
  seedctl fake --financers 3 --users 20000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := cfg.Fixtures
		flags := cmd.Flags()
		if flags.Changed("financers") {
			opts.Financers, _ = flags.GetInt("financers")
		}
		if flags.Changed("users") {
			opts.UsersPerFinancer, _ = flags.GetInt("users")
		}
		if flags.Changed("seed") {
			opts.Seed, _ = flags.GetUint64("seed")
		}

		a, err := newApp(cfg, opts)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := audit.WithRunID(cmd.Context(), ids.New())
		defer a.pushMetrics(ctx)
		outcome, err := a.runner.Run(ctx, seeder.LargeUsersSeeder)
		if err != nil {
			return err
		}
		printOutcomes(cmd, []seeder.Outcome{outcome})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fakeCmd)
	fakeCmd.Flags().Int("financers", 0, "Financers to create (default FAKE_FINANCERS)")
	fakeCmd.Flags().Int("users", 0, "Users per financer (default FAKE_USERS_PER_FINANCER)")
	fakeCmd.Flags().Uint64("seed", 0, "Faker seed (default FAKE_SEED)")
}
