package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/jonathan/lead-radar/internal/analysis"
	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

// lookupPlace fetches place details, reporting an unknown ID as ErrNotFound.
func (s *Server) lookupPlace(ctx context.Context, placeID string) (*types.Place, error) {
	place, err := s.places.GetPlace(ctx, placeID)
	var apiErr *places.APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return nil, &ErrNotFound{Resource: "Place", ID: placeID}
	}
	return place, err
}

// LeadDetailResponse is the detail view of one place.
type LeadDetailResponse struct {
	Place          *types.Place            `json:"place"`
	LeadScore      types.ScoreBreakdown    `json:"leadScore"`
	Bucket         scoring.Presentation    `json:"bucket"`
	PageSpeed      *types.PageSpeedResult  `json:"pageSpeed"`
	WebsiteScrape  *types.EnrichmentResult `json:"websiteScrape"`
	Saved          bool                    `json:"saved"`
	LatestAnalysis *db.AnalysisRecord      `json:"latestAnalysis,omitempty"`
}

// handleLeadDetail fetches a place and inspects its website: GET /lead/{placeId}
func (s *Server) handleLeadDetail(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")
	ctx := r.Context()

	place, err := s.lookupPlace(ctx, placeID)
	if err != nil {
		s.failure(w, "Place lookup failed", err)
		return
	}

	score := scoring.ScorePlace(place)
	resp := LeadDetailResponse{
		Place:     place,
		LeadScore: score,
		Bucket:    scoring.Bucket(score.Total),
	}

	if place.WebsiteURI != "" {
		inspection := s.enricher.InspectSite(ctx, place.WebsiteURI)
		resp.PageSpeed = inspection.PageSpeed
		resp.WebsiteScrape = inspection.WebsiteScrape
	}

	if s.store != nil {
		if saved, err := s.store.GetLead(ctx, placeID); err != nil {
			log.Printf("Failed to look up saved lead %s: %v", placeID, err)
		} else {
			resp.Saved = saved != nil
		}
		if latest, err := s.store.GetLatestAnalysis(ctx, placeID); err != nil {
			log.Printf("Failed to load analysis for %s: %v", placeID, err)
		} else {
			resp.LatestAnalysis = latest
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyze asks the LLM for a review summary and pitch: POST /lead/{placeId}/analyze
//
// The body may carry the place and enrichment data the client already has. A missing
// place is fetched; missing enrichment is gathered when the place has a website.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "LLM not configured")
		return
	}
	placeID := r.PathValue("placeId")
	ctx := r.Context()

	var req types.AnalyzeRequest
	body, err := s.readBody(w, r)
	if err != nil {
		s.failure(w, "Invalid request body", err)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	if req.Place == nil {
		if req.Place, err = s.lookupPlace(ctx, placeID); err != nil {
			s.failure(w, "Place lookup failed", err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Place data required")
		return
	}

	in := analysis.Input{
		Place:         req.Place,
		PageSpeed:     req.PageSpeed,
		WebsiteScrape: req.WebsiteScrape,
	}
	if req.Place.WebsiteURI != "" && req.PageSpeed == nil && req.WebsiteScrape == nil {
		inspection := s.enricher.InspectSite(ctx, req.Place.WebsiteURI)
		in.PageSpeed = inspection.PageSpeed
		in.WebsiteScrape = inspection.WebsiteScrape
		in.Excerpt = inspection.Excerpt
	}

	result, err := analysis.Analyze(ctx, s.llm, in)
	if err != nil {
		s.failure(w, "AI analysis failed", err)
		return
	}

	if s.store != nil {
		rec := db.NewAnalysisRecord(placeID, result, in.PageSpeed, in.WebsiteScrape, s.llm.GetModel(llm.TierStandard))
		if err := s.store.SaveAnalysis(ctx, &rec); err != nil {
			log.Printf("Failed to store analysis for %s: %v", placeID, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// EnrichResponse lists batch results in request order.
type EnrichResponse struct {
	Enriched []types.BatchEnrichment `json:"enriched"`
}

// handleEnrich audits and scans a batch of sites: POST /enrich
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req types.EnrichRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "places array required")
		return
	}

	results := s.enricher.EnrichBatch(r.Context(), req.Places)

	enriched := make([]types.BatchEnrichment, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, target := range req.Places {
		res, ok := results[target.PlaceID]
		if !ok || seen[target.PlaceID] {
			continue
		}
		seen[target.PlaceID] = true
		enriched = append(enriched, res)
	}
	// Anything keyed differently from the request still gets reported.
	if len(enriched) < len(results) {
		extra := make([]string, 0)
		for id := range results {
			if !seen[id] {
				extra = append(extra, id)
			}
		}
		sort.Strings(extra)
		for _, id := range extra {
			enriched = append(enriched, results[id])
		}
	}

	s.jsonResponse(w, http.StatusOK, EnrichResponse{Enriched: enriched})
}
