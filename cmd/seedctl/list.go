package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"upengage.io/seeder/internal/seeder"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List seeders and whether they run in the target environment",
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

		opts := seedOptions(cfg)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTIER\tCHAIN\tENABLED")
		row := func(s seeder.Seeder, chained bool) {
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", s.Name(), s.Tier(), chained, opts.Allows(s.Tier()))
		}
		for _, s := range a.registry.Chain() {
			row(s, true)
		}
		for _, s := range a.registry.Standalone() {
			row(s, false)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
