package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/scoring"
)

// SearchResponse is a page of scored search results.
type SearchResponse struct {
	Places        []scoring.ScoredPlace `json:"places"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

// handleSearch runs a text search: GET /search?q=&location=&pageToken=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		query = q.Get("query")
	}
	location := q.Get("location")
	pageToken := q.Get("pageToken")

	if strings.TrimSpace(query+location) == "" && pageToken == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query or location required")
		return
	}

	result, err := s.places.SearchText(r.Context(), query, location, pageToken)
	if err != nil {
		s.failure(w, "Places API error", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{
		Places:        scoring.ScorePlaces(result.Places),
		NextPageToken: result.NextPageToken,
	})
}

// handleCrossSearch fans a search out over industries or cities:
// GET /search/cross?mode=all-industries&city=Tallinn
// GET /search/cross?mode=all-locations&industry=construction
func (s *Server) handleCrossSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := places.CrossMode(q.Get("mode"))

	found, err := s.places.CrossSearch(r.Context(), mode, q.Get("city"), q.Get("industry"))
	if err != nil {
		s.failure(w, "Cross search failed", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{Places: scoring.ScorePlaces(found)})
}

// handlePhoto proxies place photo media: GET /photo?name=places/X/photos/Y&maxWidth=400
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Photo name required")
		return
	}
	maxWidth := 400
	if raw := r.URL.Query().Get("maxWidth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 4800 {
			s.errorResponse(w, http.StatusBadRequest, "maxWidth must be between 1 and 4800")
			return
		}
		maxWidth = n
	}

	photo, err := s.places.GetPhoto(r.Context(), name, maxWidth)
	if err != nil {
		s.failure(w, "Photo proxy error", err)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400, s-maxage=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(photo.Data)
}
