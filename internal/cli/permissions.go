package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
)

func newPermissionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions [role]",
		Short: "List the permissions granted to a role, or every role",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := permission.Roles()
			if len(args) == 1 {
				roles = []permission.Role{permission.Role(args[0])}
			}
			for _, role := range roles {
				perms := permission.RolePermissions(role)
				if len(perms) == 0 {
					return fmt.Errorf("unknown role %q", role)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", role)
				for _, p := range perms {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
				}
			}
			return nil
		},
	}
}
