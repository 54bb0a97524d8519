// Command seedctl loads reference data, roles and snapshots into the platform database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"upengage.io/seeder/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "seedctl",
	Short: "Seed reference data, roles and snapshots",
	Long: `seedctl populates a database with the data the platform needs to run.

Configuration comes from the environment and from .env.local / .env when
present. --env overrides APP_ENV for a single invocation and decides which
datasets are loaded: demo content goes to local, dev and staging; development
fixtures only to local and dev.

Example:
  seedctl migrate up
  seedctl seed --env staging
  seedctl seed --class roles_from_pivot`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "Target environment (local, dev, staging, production); defaults to APP_ENV")
	rootCmd.PersistentFlags().StringSlice("env-file", config.DefaultEnvFiles, "Env files to read when present")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seedctl: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and applies --env.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(files)
	if err != nil {
		return nil, err
	}
	if name, _ := cmd.Flags().GetString("env"); name != "" {
		return cfg.WithEnvironment(name)
	}
	return cfg, nil
}
