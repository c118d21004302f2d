package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/refresh"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-scan saved leads for emails once",
	Long:  "Run one email refresh over the saved leads with websites, least recently scanned first, and exit.",
	RunE:  runRefresh,
}

var refreshBatchSize int

func init() {
	refreshCmd.Flags().IntVar(&refreshBatchSize, "batch-size", 0, "Leads to re-scan (default 25)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
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

	rcfg := cfg.Refresh()
	if refreshBatchSize > 0 {
		rcfg.BatchSize = refreshBatchSize
	}
	svc := refresh.NewService(database, newEnricher(cfg), rcfg)

	ctx, cancel := context.WithTimeout(ctx, refresh.DefaultTimeout)
	defer cancel()
	summary, err := svc.RunOnce(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d leads: %d updated, %d with emails, %d failed\n",
		summary.Scanned, summary.Updated, summary.WithEmails, summary.Failed)
	return nil
}
