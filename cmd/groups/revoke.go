package groups

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var revokeCmd = &cobra.Command{
	Use:   "revoke <group-id> <object-path>",
	Short: "Revoke an object path from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := cmdutil.ParseID("group", args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		if err := bundle.Service.RevokePermission(ctx, groupID, args[1]); err != nil {
			return fmt.Errorf("failed to revoke %s from group %d: %w", args[1], groupID, err)
		}

		fmt.Printf("Revoked %s from group %d\n", args[1], groupID)
		return nil
	},
}
