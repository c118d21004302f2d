package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/observability"
	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search businesses and print them with lead scores",
	Long: `Run a Places text search, or a cross search with --mode, and print the results scored and bucketed.
Examples:
  lead_radar search --query ehitusfirma --location Tartu
  lead_radar search --mode all-industries --city Tallinn`,
	RunE: runSearch,
}

var (
	searchQuery    string
	searchLocation string
	searchMode     string
	searchCity     string
	searchIndustry string
)

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search terms")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "City or area")
	searchCmd.Flags().StringVar(&searchMode, "mode", "", "Cross search mode: all-industries or all-locations")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "City for all-industries mode")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "Industry ID for all-locations mode")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchMode == "" && searchQuery == "" && searchLocation == "" {
		return fmt.Errorf("--query, --location or --mode is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newPlaces(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var found []types.Place
	if searchMode != "" {
		found, err = client.CrossSearch(ctx, places.CrossMode(searchMode), searchCity, searchIndustry)
	} else {
		var page *places.SearchResult
		if page, err = client.SearchText(ctx, searchQuery, searchLocation, ""); err == nil {
			found = page.Places
		}
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPlaces(scoring.ScorePlaces(found))
	return nil
}
