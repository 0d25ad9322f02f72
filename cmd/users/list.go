package users

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/db/models"
)

var includeInactiveFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with their groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		list, err := bundle.Service.List(ctx, includeInactiveFlag)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(list) == 0 {
			pterm.Info.Println("No users found.")
			return nil
		}

		loaded := make([]*models.User, len(list))
		for i := range list {
			loaded[i] = &list[i]
		}
		hydrated, err := bundle.Service.Hydrate(ctx, loaded)
		if err != nil {
			return fmt.Errorf("failed to load group membership: %w", err)
		}

		table := pterm.TableData{{"ID", "EMAIL", "NAME", "ACTIVE", "SUPERUSER", "GROUPS", "INSTALLER"}}
		for _, u := range hydrated {
			groups := make([]string, len(u.GroupIDs))
			for i, id := range u.GroupIDs {
				groups[i] = strconv.FormatInt(id, 10)
			}
			installer := ""
			if u.IsInstaller {
				installer = "yes"
				if u.HasInvitedSecondUser {
					installer = "yes (invited others)"
				}
			}
			table = append(table, []string{
				strconv.FormatInt(u.ID, 10),
				u.Email,
				u.CommonName,
				strconv.FormatBool(u.IsActive),
				strconv.FormatBool(u.IsSuperuser),
				strings.Join(groups, ","),
				installer,
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}
