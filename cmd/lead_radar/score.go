package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-radar/internal/observability"
	"github.com/jonathan/lead-radar/internal/schemas"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a place record as a lead",
	Long:  "Read a place JSON record, validate it against the place schema and print its lead score breakdown and bucket.",
	RunE:  runScore,
}

var (
	scorePlaceFile string
	scoreJSON      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scorePlaceFile, "place", "p", "", "Path to a place JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the breakdown as JSON")

	if err := scoreCmd.MarkFlagRequired("place"); err != nil {
		panic(fmt.Sprintf("failed to mark place flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	place, err := readPlaceFile(scorePlaceFile)
	if err != nil {
		return err
	}

	score := scoring.ScorePlace(place)
	out := cmd.OutOrStdout()

	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"leadScore": score, "bucket": scoring.Bucket(score.Total)})
	}

	observability.NewPrinter(out).PrintScore(place.Name(), score)
	return nil
}

// readPlaceFile loads and schema-checks a place record.
func readPlaceFile(path string) (*types.Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read place file: %w", err)
	}
	if err := schemas.ValidatePlaceJSON(string(data)); err != nil {
		return nil, fmt.Errorf("place file is invalid: %w", err)
	}
	var place types.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, fmt.Errorf("failed to parse place file: %w", err)
	}
	return &place, nil
}
