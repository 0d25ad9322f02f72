package groups

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var grantCmd = &cobra.Command{
	Use:   "grant <group-id> <object-path>",
	Short: "Grant an object path to a group",
	Long: `Grants an object path such as /collection/12/ to every member of the group.
Granting a path that is already held is a no-op.`,
	Args: cobra.ExactArgs(2),
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

		if err := bundle.Service.GrantPermission(ctx, groupID, args[1]); err != nil {
			return fmt.Errorf("failed to grant %s to group %d: %w", args[1], groupID, err)
		}

		fmt.Printf("Granted %s to group %d\n", args[1], groupID)
		return nil
	},
}
