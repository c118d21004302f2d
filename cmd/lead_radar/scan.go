package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/observability"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a website for emails, social profiles and copyright year",
	Long:  "Fetch the homepage and the usual contact and about pages of a website and print the contact data found on them.",
	RunE:  runScan,
}

var (
	scanURL  string
	scanJSON bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "Website URL (required)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the result as JSON")

	if err := scanCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result := newEnricher(cfg).ScanSite(context.Background(), scanURL)
	out := cmd.OutOrStdout()

	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	observability.NewPrinter(out).PrintEnrichment(scanURL, result)
	return nil
}
