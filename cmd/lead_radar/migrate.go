package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Connect to DATABASE_URL and apply any pending schema migrations.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx := context.Background()
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := database.MigrationVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database schema is at version %d\n", version)
	return nil
}
