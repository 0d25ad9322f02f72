package users

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/services/users"
)

var (
	groupIDsFlag         []int64
	allowSystemEditsFlag bool
)

var setGroupsCmd = &cobra.Command{
	Use:   "set-groups <user-id>",
	Short: "Set the exact group membership of a user",
	Long: `Moves the user's membership to exactly the groups given with --group.
Only the difference is written. The All Users group must stay in the list
unless --allow-system-edits is passed.`,
	Args: cobra.ExactArgs(1),
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

		changed, err := bundle.Service.SetGroups(ctx, id, groupIDsFlag, users.SetGroupsOptions{
			AllowSystemMembershipEdits: allowSystemEditsFlag,
		})
		if err != nil {
			return fmt.Errorf("failed to set groups for user %d: %w", id, err)
		}

		if !changed {
			fmt.Println("Membership already up to date")
			return nil
		}
		fmt.Printf("Membership of user %d set to %v\n", id, groupIDsFlag)
		return nil
	},
}
