package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"upengage.io/seeder/internal/auth"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [role]",
	Short: "Show the permissions each role receives",
	Long: `Show the permissions and assignable roles that role_permissions seeds.

Without an argument every role is listed with its permission count.

Example:
  seedctl roles
  seedctl roles financer_admin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, role := range auth.AllRoles {
				perms, err := auth.PermissionsForRole(role)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s %d permissions\n", role, len(perms))
			}
			return nil
		}
		role := args[0]
		perms, err := auth.PermissionsForRole(role)
		if err != nil {
			return err
		}
		assignable, err := auth.AssignableRoles(role)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "role: %s\n", role)
		fmt.Fprintf(out, "assignable roles: %s\n", strings.Join(assignable, ", "))
		fmt.Fprintln(out, "permissions:")
		for _, p := range perms {
			fmt.Fprintf(out, "  %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
