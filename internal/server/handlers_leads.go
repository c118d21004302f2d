package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/export"
	"github.com/jonathan/lead-radar/internal/schemas"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

// handleListLeads lists saved leads, newest first: GET /leads
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		s.failure(w, "Failed to list leads", err)
		return
	}
	if leads == nil {
		leads = []db.SavedLead{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"leads": leads})
}

// handleSaveLead saves a place as a lead: POST /leads
//
// The lead score is computed when the client did not send one, and the
// website is scanned for emails before the row is written.
func (s *Server) handleSaveLead(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ctx := r.Context()

	body, err := s.readBody(w, r)
	if err != nil {
		s.failure(w, "Invalid request body", err)
		return
	}
	var raw struct {
		Place json.RawMessage `json:"place"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(raw.Place) == 0 || string(raw.Place) == "null" {
		s.errorResponse(w, http.StatusBadRequest, "Place data required")
		return
	}
	if err := schemas.ValidatePlaceJSON(string(raw.Place)); err != nil {
		s.failure(w, "Invalid place", err)
		return
	}

	var req types.SaveLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, "Invalid lead", err)
		return
	}

	existing, err := s.store.GetLead(ctx, req.Place.ID)
	if err != nil {
		s.failure(w, "Failed to save lead", err)
		return
	}
	if existing != nil {
		s.errorResponse(w, http.StatusConflict, "Lead already saved")
		return
	}

	score := scoring.ScorePlace(req.Place).Total
	if req.LeadScore != nil {
		score = *req.LeadScore
	}

	var emails []string
	if req.Place.WebsiteURI != "" {
		emails = s.enricher.ScanSite(ctx, req.Place.WebsiteURI).Emails
	}

	lead, err := db.NewLeadFromPlace(req.Place, score, emails)
	if err != nil {
		s.failure(w, "Failed to save lead", err)
		return
	}
	saved, err := s.store.SaveLead(ctx, lead)
	if err != nil {
		s.failure(w, "Failed to save lead", err)
		return
	}

	log.Printf("Saved lead %s (%s) score=%d emails=%d", saved.PlaceID, saved.Name, saved.LeadScore, len(saved.Emails))
	s.jsonResponse(w, http.StatusCreated, map[string]any{"lead": saved})
}

// handleDeleteLeads removes one lead or a list of leads: DELETE /leads
func (s *Server) handleDeleteLeads(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req types.DeleteLeadsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "placeId or placeIds required")
		return
	}

	var deleted int64
	if len(req.PlaceIDs) > 0 {
		n, err := s.store.DeleteLeads(r.Context(), req.PlaceIDs)
		if err != nil {
			s.failure(w, "Failed to delete leads", err)
			return
		}
		deleted = n
	} else {
		ok, err := s.store.DeleteLead(r.Context(), req.PlaceID)
		if err != nil {
			s.failure(w, "Failed to delete lead", err)
			return
		}
		if ok {
			deleted = 1
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

// handleUpdateNotes replaces a lead's notes: PATCH /leads/{placeId}/notes
func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	placeID := r.PathValue("placeId")

	var req types.UpdateNotesRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, "Invalid notes", err)
		return
	}

	lead, err := s.store.UpdateNotes(r.Context(), placeID, req.Notes)
	if err != nil {
		s.failure(w, "Failed to update notes", err)
		return
	}
	if lead == nil {
		s.failure(w, "Failed to update notes", &ErrNotFound{Resource: "Lead", ID: placeID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"lead": lead})
}

// handleExportLeads streams every saved lead as CSV: GET /leads/export
func (s *Server) handleExportLeads(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		s.failure(w, "Failed to export leads", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.now())))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, leads); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}
