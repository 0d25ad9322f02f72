package groups

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var showCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show the object paths granted to a group",
	Args:  cobra.ExactArgs(1),
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

		objects, err := bundle.Service.GroupPermissions(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to list grants of group %d: %w", groupID, err)
		}

		pterm.DefaultSection.Printf("Grants of group %d\n", groupID)
		if len(objects) == 0 {
			pterm.Info.Println("No object paths granted.")
			return nil
		}
		for _, object := range objects {
			pterm.Println(object)
		}
		return nil
	},
}
