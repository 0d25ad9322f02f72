package users

import "github.com/spf13/cobra"

// UsersCmd is the parent command for user management operations
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long:  `Commands for creating and updating accounts, their group membership and permissions.`,
}

func init() {
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the user")
	createCmd.Flags().StringVar(&firstNameFlag, "first-name", "", "First name of the user")
	createCmd.Flags().StringVar(&lastNameFlag, "last-name", "", "Last name of the user")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password for the user (use --stdin to avoid shell history)")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")
	createCmd.Flags().StringVar(&localeFlag, "locale", "", "Preferred locale, e.g. en or pt_BR")
	createCmd.Flags().BoolVar(&superuserFlag, "superuser", false, "Make the user an administrator")
	createCmd.Flags().BoolVar(&inviteFlag, "invite", false, "Send a welcome email after the user is created")
	createCmd.Flags().StringVar(&ssoSourceFlag, "sso-source", "", "Provision the user for an SSO provider (google, ldap, ...); no password")

	updateCmd.Flags().StringArrayVar(&setFlags, "set", []string{}, "Field to change as key=value (repeatable), e.g. --set is_active=false")

	setGroupsCmd.Flags().Int64SliceVar(&groupIDsFlag, "group", []int64{}, "Desired group id (repeatable); the user ends up in exactly these groups")
	setGroupsCmd.Flags().BoolVar(&allowSystemEditsFlag, "allow-system-edits", false, "Allow removing the All Users membership")

	setPasswordCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")
	setPasswordCmd.Flags().StringVar(&passwordFlag, "password", "", "New password (use --stdin to avoid shell history)")

	resetTokenCmd.Flags().StringVar(&verifyTokenFlag, "verify", "", "Check a reset token instead of issuing a new one")

	listCmd.Flags().BoolVar(&includeInactiveFlag, "include-inactive", false, "Include deactivated users")

	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(updateCmd)
	UsersCmd.AddCommand(setGroupsCmd)
	UsersCmd.AddCommand(setPasswordCmd)
	UsersCmd.AddCommand(resetTokenCmd)
	UsersCmd.AddCommand(listCmd)
	UsersCmd.AddCommand(permissionsCmd)
	UsersCmd.AddCommand(showCmd)
}
