package users

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/db/models"
)

var showCmd = &cobra.Command{
	Use:   "show <user-id|email>",
	Short: "Show one user with group membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		var user *models.User
		if strings.Contains(args[0], "@") {
			user, err = bundle.Service.GetByEmail(ctx, args[0])
		} else {
			id, perr := cmdutil.ParseID("user", args[0])
			if perr != nil {
				return perr
			}
			user, err = bundle.Service.GetByID(ctx, id)
		}
		if err != nil {
			return fmt.Errorf("failed to load user %s: %w", args[0], err)
		}

		hydrated, err := bundle.Service.Hydrate(ctx, []*models.User{user})
		if err != nil {
			return fmt.Errorf("failed to load group membership: %w", err)
		}
		user = hydrated[0]

		pterm.DefaultSection.Println(user.CommonName)
		pterm.Printf("ID: %d\n", user.ID)
		pterm.Printf("Email: %s\n", user.Email)
		pterm.Printf("Active: %t\n", user.IsActive)
		pterm.Printf("Superuser: %t\n", user.IsSuperuser)
		if user.Locale != nil {
			pterm.Printf("Locale: %s\n", *user.Locale)
		}
		if user.SSOSource != nil {
			pterm.Printf("SSO source: %s\n", *user.SSOSource)
		}
		pterm.Printf("Groups: %v\n", user.GroupIDs)
		if user.IsInstaller {
			pterm.Println("Installer: yes")
		}
		return nil
	},
}
