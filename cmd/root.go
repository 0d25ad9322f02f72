package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ongood/metabase-sub001/cmd/groups"
	"github.com/ongood/metabase-sub001/cmd/users"
	"github.com/ongood/metabase-sub001/internal/config"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

var (
	cfg               *config.Config
	telemetryShutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Account, group and permission management",
	Long: `accounts manages user accounts, group membership and the permission
sets derived from them. It talks to PostgreSQL or SQLite directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; the environment wins either way.
		_ = godotenv.Load()

		if dbURL, _ := cmd.Flags().GetString("db-url"); dbURL != "" {
			if err := os.Setenv("DATABASE_URL", dbURL); err != nil {
				return fmt.Errorf("failed to apply --db-url: %w", err)
			}
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			if err := os.Setenv("DEBUG", "true"); err != nil {
				return fmt.Errorf("failed to apply --debug: %w", err)
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		telemetryShutdown, err = telemetry.Init(cmd.Context(), cfg.Observability)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown == nil {
			return nil
		}
		if err := telemetryShutdown(context.Background()); err != nil {
			log.Printf("Warning: %v", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
	rootCmd.AddCommand(groups.GroupsCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
