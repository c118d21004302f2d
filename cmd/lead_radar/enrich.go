package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/observability"
	"github.com/jonathan/lead-radar/internal/schemas"
	"github.com/jonathan/lead-radar/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run PageSpeed audits and email scans for a batch of sites",
	Long:  "Read a JSON array of {placeId, websiteUri} targets and enrich each site with a PageSpeed audit and a homepage email scan.",
	RunE:  runEnrich,
}

var (
	enrichInputFile  string
	enrichOutputFile string
)

func init() {
	enrichCmd.Flags().StringVarP(&enrichInputFile, "input", "i", "", "Path to site targets JSON (required)")
	enrichCmd.Flags().StringVarP(&enrichOutputFile, "out", "o", "", "Write results as JSON to this file")

	if err := enrichCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(enrichInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	if err := schemas.Validate(schemas.SiteTargetsSchema, string(data)); err != nil {
		return fmt.Errorf("input file is invalid: %w", err)
	}
	var targets []types.SiteTarget
	if err := json.Unmarshal(data, &targets); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results := newEnricher(cfg).EnrichBatch(context.Background(), targets)

	if enrichOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		if err := os.WriteFile(enrichOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatch(results)
	return nil
}
