package users

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/cmdutil"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/services/users"
)

var (
	emailFlag     string
	firstNameFlag string
	lastNameFlag  string
	passwordFlag  string
	stdinFlag     bool
	localeFlag    string
	superuserFlag bool
	inviteFlag    bool
	ssoSourceFlag string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate required flags
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}

		password, err := readPassword()
		if err != nil {
			return err
		}

		if ssoSourceFlag != "" && password != "" {
			return fmt.Errorf("--sso-source users cannot have a password")
		}
		if ssoSourceFlag != "" && inviteFlag {
			return fmt.Errorf("--invite cannot be combined with --sso-source")
		}

		input := users.CreateInput{
			Email:       emailFlag,
			FirstName:   optional(firstNameFlag),
			LastName:    optional(lastNameFlag),
			Password:    optional(password),
			Locale:      optional(localeFlag),
			IsSuperuser: superuserFlag,
		}

		ctx := cmd.Context()
		bundle, err := cmdutil.LoadUsersServiceBundle(ctx)
		if err != nil {
			return err
		}
		defer bundle.Close()

		var (
			user      *models.User
			notifyErr error
		)
		switch {
		case ssoSourceFlag != "":
			result, err := bundle.Service.CreateSSOUser(ctx, input, ssoSourceFlag)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			user, notifyErr = result.User, result.NotifyErr
		case inviteFlag:
			result, err := bundle.Service.CreateAndInvite(ctx, input, nil, false)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			user, notifyErr = result.User, result.NotifyErr
		default:
			user, err = bundle.Service.Create(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		}

		fmt.Println("User created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("User ID: %d\n", user.ID)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Name: %s\n", user.CommonName)
		fmt.Printf("Superuser: %t\n", user.IsSuperuser)
		if user.SSOSource != nil {
			fmt.Printf("SSO source: %s\n", *user.SSOSource)
		}
		fmt.Println("----------------------------------------")

		if notifyErr != nil {
			pterm.Warning.Printf("User was created but the notification failed: %v\n", notifyErr)
		}
		return nil
	},
}

// readPassword returns --password, or a line from stdin when --stdin is set.
func readPassword() (string, error) {
	if !stdinFlag {
		return passwordFlag, nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("Enter password: ")
	var password string
	if scanner.Scan() {
		password = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
