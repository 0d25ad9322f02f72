package groups

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List permission groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		groups, err := bundle.Service.ListGroups(ctx)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}

		table := pterm.TableData{{"ID", "NAME", "CREATED_AT"}}
		for _, g := range groups {
			table = append(table, []string{
				strconv.FormatInt(g.ID, 10),
				g.Name,
				g.CreatedAt.Format(time.RFC3339),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}
