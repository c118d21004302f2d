// Package server provides the HTTP REST API for lead search, enrichment and saved leads.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/server/ratelimit"
	"github.com/jonathan/lead-radar/internal/types"
)

// maxBodyBytes caps request bodies; a place record with reviews is well under this.
const maxBodyBytes = 1 << 20

// PlacesAPI is the place-search provider.
type PlacesAPI interface {
	SearchText(ctx context.Context, query, location, pageToken string) (*places.SearchResult, error)
	CrossSearch(ctx context.Context, mode places.CrossMode, city, industryID string) ([]types.Place, error)
	GetPlace(ctx context.Context, placeID string) (*types.Place, error)
	GetPhoto(ctx context.Context, name string, maxWidth int) (*places.Photo, error)
}

// SiteEnricher scans websites and runs PageSpeed audits.
type SiteEnricher interface {
	ScanSite(ctx context.Context, websiteURL string) types.EnrichmentResult
	EnrichBatch(ctx context.Context, targets []types.SiteTarget) map[string]types.BatchEnrichment
	InspectSite(ctx context.Context, websiteURL string) types.SiteInspection
}

// LeadStore persists saved leads and their analyses.
type LeadStore interface {
	Ping(ctx context.Context) error
	SaveLead(ctx context.Context, in db.NewLead) (*db.SavedLead, error)
	GetLead(ctx context.Context, placeID string) (*db.SavedLead, error)
	ListLeads(ctx context.Context) ([]db.SavedLead, error)
	DeleteLead(ctx context.Context, placeID string) (bool, error)
	DeleteLeads(ctx context.Context, placeIDs []string) (int64, error)
	UpdateNotes(ctx context.Context, placeID, notes string) (*db.SavedLead, error)
	SaveAnalysis(ctx context.Context, rec *db.AnalysisRecord) error
	GetLatestAnalysis(ctx context.Context, placeID string) (*db.AnalysisRecord, error)
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
	// RateLimit defaults to ratelimit.LoadConfig() when nil.
	RateLimit *ratelimit.Config
}

// Deps are the collaborators behind the handlers. Store and LLM may be nil,
// in which case the routes that need them answer 503.
type Deps struct {
	Places   PlacesAPI
	Enricher SiteEnricher
	Store    LeadStore
	LLM      llm.Client
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	places         PlacesAPI
	enricher       SiteEnricher
	store          LeadStore
	llm            llm.Client
	rateLimiter    *ratelimit.Limiter
	allowedOrigins []string
	now            func() time.Time
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		places:         deps.Places,
		enricher:       deps.Enricher,
		store:          deps.Store,
		llm:            deps.LLM,
		allowedOrigins: cfg.AllowedOrigins,
		now:            time.Now,
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // Batch enrichment and LLM analysis are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Search
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /search/cross", s.handleCrossSearch)
	mux.HandleFunc("GET /photo", s.handlePhoto)

	// Lead detail and analysis
	mux.HandleFunc("GET /lead/{placeId}", s.handleLeadDetail)
	mux.HandleFunc("POST /lead/{placeId}/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /enrich", s.handleEnrich)

	// Saved leads
	mux.HandleFunc("GET /leads", s.handleListLeads)
	mux.HandleFunc("POST /leads", s.handleSaveLead)
	mux.HandleFunc("DELETE /leads", s.handleDeleteLeads)
	mux.HandleFunc("GET /leads/export", s.handleExportLeads)
	mux.HandleFunc("PATCH /leads/{placeId}/notes", s.handleUpdateNotes)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin(r.Header.Get("Origin")))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin echoes a listed origin, or "*" when no list is configured.
func (s *Server) allowOrigin(origin string) string {
	if len(s.allowedOrigins) == 0 {
		return "*"
	}
	for _, o := range s.allowedOrigins {
		if o == "*" {
			return "*"
		}
		if strings.EqualFold(o, origin) {
			return origin
		}
	}
	return s.allowedOrigins[0]
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		} else {
			status["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure logs err and writes the status HTTPStatus assigns to it.
func (s *Server) failure(w http.ResponseWriter, message string, err error) {
	status := HTTPStatus(err)
	log.Printf("%s: %v", message, err)
	if status < http.StatusInternalServerError {
		s.errorResponse(w, status, publicMessage(err, message))
		return
	}
	s.errorResponse(w, status, message)
}

// readBody reads a size-capped request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return body, nil
}

// decodeJSON decodes a size-capped request body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := s.readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// requireStore answers 503 when no database is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored; it is not trusted without a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// publicMessage returns the message of a client-facing error.
func publicMessage(err error, fallback string) string {
	var v *ErrValidation
	if errors.As(err, &v) {
		return v.Message
	}
	var apiErr *places.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var nf *ErrNotFound
	if errors.As(err, &nf) {
		return nf.Error()
	}
	if errors.Is(err, db.ErrLeadExists) {
		return "Lead already saved"
	}
	return fallback
}
