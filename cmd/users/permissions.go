package users

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions <user-id>",
	Short: "Show the object paths a user can reach",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmdutil.ParseID("user", args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		set, err := bundle.Service.PermissionSet(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to compute permissions for user %d: %w", id, err)
		}

		pterm.DefaultSection.Printf("Permissions of user %d\n", id)
		for _, path := range set.Sorted() {
			pterm.Println(path)
		}
		return nil
	},
}
