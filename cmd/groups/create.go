package groups

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a permission group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		group, err := bundle.Service.CreateGroup(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		fmt.Printf("Created group %q with id %d\n", group.Name, group.ID)
		return nil
	},
}
