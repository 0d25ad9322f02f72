package users

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
)

var setPasswordCmd = &cobra.Command{
	Use:   "set-password <user-id>",
	Short: "Replace a user's password",
	Long:  `Replaces the password, clears any pending reset token and signs the user out of every session.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmdutil.ParseID("user", args[0])
		if err != nil {
			return err
		}

		password, err := readPassword()
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		if err := bundle.Service.SetPassword(ctx, id, password); err != nil {
			return fmt.Errorf("failed to set password for user %d: %w", id, err)
		}

		fmt.Printf("Password updated for user %d\n", id)
		return nil
	},
}
