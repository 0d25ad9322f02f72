package users

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/services/users"
)

var verifyTokenFlag string

var resetTokenCmd = &cobra.Command{
	Use:   "reset-token <user-id>",
	Short: "Issue or verify a password reset token",
	Args:  cobra.ExactArgs(1),
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

		if verifyTokenFlag != "" {
			ok, err := bundle.Service.ValidResetToken(ctx, id, verifyTokenFlag)
			if err != nil {
				return fmt.Errorf("failed to verify reset token: %w", err)
			}
			if !ok {
				pterm.Error.Println("Reset token is invalid or expired")
				return fmt.Errorf("invalid reset token")
			}
			pterm.Success.Println("Reset token is valid")
			return nil
		}

		token, err := bundle.Service.CreateResetToken(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to create reset token: %w", err)
		}

		fmt.Println("Reset token created. It is shown only once:")
		fmt.Println(token)
		fmt.Printf("Expires in %s\n", users.ResetTokenTTL)
		return nil
	},
}
