package groups

import "github.com/spf13/cobra"

// GroupsCmd is the parent command for permission group operations
var GroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage permission groups",
	Long:  `Commands for creating permission groups and granting and revoking object paths.`,
}

func init() {
	GroupsCmd.AddCommand(createCmd)
	GroupsCmd.AddCommand(listCmd)
	GroupsCmd.AddCommand(grantCmd)
	GroupsCmd.AddCommand(revokeCmd)
	GroupsCmd.AddCommand(showCmd)
}
