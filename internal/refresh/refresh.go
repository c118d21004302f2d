// Package refresh periodically re-scans the websites of saved leads and stores
// the emails found.
package refresh

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/types"
)

// Defaults.
const (
	DefaultSchedule  = "0 3 * * *"
	DefaultBatchSize = 25
	DefaultTimeout   = 10 * time.Minute
)

// LeadStore is the part of the database the refresher needs.
type LeadStore interface {
	ListLeadsWithWebsite(ctx context.Context, limit int) ([]db.SavedLead, error)
	UpdateLeadEmails(ctx context.Context, placeID string, emails []string) error
}

// SiteScanner scans a website for contact data.
type SiteScanner interface {
	ScanSite(ctx context.Context, websiteURL string) types.EnrichmentResult
}

// Summary describes one refresh run.
type Summary struct {
	Scanned    int
	Updated    int
	WithEmails int
	Failed     int
}

// Config controls the refresh job.
type Config struct {
	Schedule  string        `json:"schedule" yaml:"schedule"`
	BatchSize int           `json:"batchSize" yaml:"batchSize" validate:"omitempty,min=1,max=500"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// ParseSchedule validates a standard five-field cron expression.
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule, nil
}

// Service runs refreshes on a cron schedule
type Service struct {
	store   LeadStore
	scanner SiteScanner
	cfg     Config
	cron    *cron.Cron

	mu       sync.Mutex
	schedule cron.Schedule
	lastRun  *time.Time
}

// NewService creates a refresher. Zero config values take the defaults.
func NewService(store LeadStore, scanner SiteScanner, cfg Config) *Service {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		store:   store,
		scanner: scanner,
		cfg:     cfg,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules the job and starts the cron runner.
func (s *Service) Start() error {
	schedule, err := ParseSchedule(s.cfg.Schedule)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()
	s.cron.Schedule(schedule, cron.FuncJob(s.runScheduled))

	s.cron.Start()
	log.Printf("[REFRESH] Scheduler started with schedule: %s", s.cfg.Schedule)
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[REFRESH] Scheduler stopped")
}

// NextRun returns the next scheduled time, or the zero time when not started.
func (s *Service) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return time.Time{}
	}
	return s.schedule.Next(time.Now())
}

// LastRun returns when RunOnce last completed.
func (s *Service) LastRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Service) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		log.Printf("[REFRESH] Run failed: %v", err)
	}
}

// RunOnce re-scans up to BatchSize leads, least recently scanned first.
// A lead whose site could not be reached at all keeps its stored emails and is
// counted as failed, as is one whose emails cannot be stored.
func (s *Service) RunOnce(ctx context.Context) (Summary, error) {
	var summary Summary

	leads, err := s.store.ListLeadsWithWebsite(ctx, s.cfg.BatchSize)
	if err != nil {
		return summary, fmt.Errorf("failed to list leads: %w", err)
	}
	log.Printf("[REFRESH] Re-scanning %d saved leads", len(leads))

	for _, lead := range leads {
		if ctx.Err() != nil {
			log.Printf("[REFRESH] Stopping early: %v", ctx.Err())
			break
		}
		website := lead.Website()
		if website == "" {
			continue
		}

		result := s.scanner.ScanSite(ctx, website)
		summary.Scanned++

		if !result.Reached() {
			log.Printf("[REFRESH] %s unreachable, keeping stored emails for %s", website, lead.PlaceID)
			summary.Failed++
			continue
		}

		if err := s.store.UpdateLeadEmails(ctx, lead.PlaceID, result.Emails); err != nil {
			log.Printf("[REFRESH] Failed to store emails for %s: %v", lead.PlaceID, err)
			summary.Failed++
			continue
		}
		summary.Updated++
		if len(result.Emails) > 0 {
			summary.WithEmails++
		}
	}

	now := time.Now()
	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()

	log.Printf("[REFRESH] Done: %d scanned, %d updated, %d with emails, %d failed",
		summary.Scanned, summary.Updated, summary.WithEmails, summary.Failed)
	return summary, nil
}
