package users

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/services/users"
)

var setFlags []string

var updateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update fields of a user",
	Long: `Applies a partial update. Each --set names a field by its column name:
email, first_name, last_name, password, locale, is_active, is_superuser, sso_source.
Setting is_superuser also moves the user in or out of the Administrators group,
and setting is_active=false removes the user's notification subscriptions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmdutil.ParseID("user", args[0])
		if err != nil {
			return err
		}
		if len(setFlags) == 0 {
			return fmt.Errorf("at least one field must be specified using --set")
		}

		values := make(map[string]any, len(setFlags))
		for _, kv := range setFlags {
			key, value, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(key) == "" {
				return fmt.Errorf("invalid --set %q, expected key=value", kv)
			}
			values[strings.TrimSpace(key)] = value
		}

		patch, err := users.DecodePatch(values)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		user, err := bundle.Service.Update(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("failed to update user %d: %w", id, err)
		}

		fmt.Printf("Updated user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}
