package places

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lead-radar/internal/types"
)

// CrossMode selects which axis a cross search fans out over.
type CrossMode string

const (
	// ModeAllIndustries searches every industry in one city.
	ModeAllIndustries CrossMode = "all-industries"
	// ModeAllLocations searches one industry in every city.
	ModeAllLocations CrossMode = "all-locations"
)

// MaxCrossConcurrency bounds simultaneous searches during a cross search.
const MaxCrossConcurrency = 5

// CrossQueries builds the text queries for a cross search.
func CrossQueries(mode CrossMode, city, industryID string) ([]string, error) {
	switch mode {
	case ModeAllIndustries:
		if city == "" {
			return nil, &APIError{StatusCode: 400, Message: "city required"}
		}
		queries := make([]string, len(industries))
		for i, ind := range industries {
			queries[i] = TextQuery(ind.SearchTermEt, city)
		}
		return queries, nil

	case ModeAllLocations:
		if industryID == "" {
			return nil, &APIError{StatusCode: 400, Message: "industry required"}
		}
		ind, ok := FindIndustry(industryID)
		if !ok {
			return nil, &APIError{StatusCode: 400, Message: fmt.Sprintf("unknown industry %q", industryID)}
		}
		queries := make([]string, len(cities))
		for i, c := range cities {
			queries[i] = TextQuery(ind.SearchTermEt, c.Name)
		}
		return queries, nil

	default:
		return nil, &APIError{StatusCode: 400, Message: "mode must be all-industries or all-locations"}
	}
}

// CrossSearch runs the first result page of every cross query concurrently and
// merges the places, dropping duplicate IDs. Merge order follows query order.
// Failed queries are logged and skipped.
func (c *Client) CrossSearch(ctx context.Context, mode CrossMode, city, industryID string) ([]types.Place, error) {
	queries, err := CrossQueries(mode, city, industryID)
	if err != nil {
		return nil, err
	}

	pages := make([][]types.Place, len(queries))
	var g errgroup.Group
	g.SetLimit(MaxCrossConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			res, err := c.SearchText(ctx, q, "", "")
			if err != nil {
				log.Printf("[PLACES] Cross search query %q failed: %v", q, err)
				return nil
			}
			pages[i] = res.Places
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	merged := make([]types.Place, 0)
	for _, page := range pages {
		for _, p := range page {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}

	log.Printf("[PLACES] Cross search %s: %d queries, %d unique places", mode, len(queries), len(merged))
	return merged, nil
}
