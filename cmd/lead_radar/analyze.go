package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/analysis"
	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/observability"
	"github.com/jonathan/lead-radar/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Write a review summary and sales pitch for a lead",
	Long:  "Load a place from a JSON file or the Places API, inspect its website and ask the configured LLM for a review summary and an outreach pitch.",
	RunE:  runAnalyze,
}

var (
	analyzePlaceFile string
	analyzePlaceID   string
	analyzeSkipSite  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzePlaceFile, "place", "p", "", "Path to a place JSON file")
	analyzeCmd.Flags().StringVar(&analyzePlaceID, "place-id", "", "Place ID to fetch from the Places API")
	analyzeCmd.Flags().BoolVar(&analyzeSkipSite, "skip-site", false, "Do not inspect the website")
	analyzeCmd.MarkFlagsMutuallyExclusive("place", "place-id")
	analyzeCmd.MarkFlagsOneRequired("place", "place-id")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LLMAPIKey == "" {
		return fmt.Errorf("an LLM API key is required (ANTHROPIC_API_KEY, GEMINI_API_KEY or OPENAI_API_KEY)")
	}

	ctx := context.Background()

	var place *types.Place
	if analyzePlaceFile != "" {
		place, err = readPlaceFile(analyzePlaceFile)
	} else {
		client, cerr := newPlaces(cfg)
		if cerr != nil {
			return cerr
		}
		place, err = client.GetPlace(ctx, analyzePlaceID)
	}
	if err != nil {
		return err
	}

	in := analysis.Input{Place: place}
	if place.WebsiteURI != "" && !analyzeSkipSite {
		inspection := newEnricher(cfg).InspectSite(ctx, place.WebsiteURI)
		in.PageSpeed = inspection.PageSpeed
		in.WebsiteScrape = inspection.WebsiteScrape
		in.Excerpt = inspection.Excerpt
	}

	llmCfg, err := cfg.LLM()
	if err != nil {
		return err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.LLMAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := analysis.Analyze(ctx, client, in)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(place.Name(), result)
	return nil
}
