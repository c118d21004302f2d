// Package enrichment collects website signals for leads: contact data scraped from
// the site and PageSpeed category scores. All network work is best-effort; a failed
// unit degrades to "unavailable" and never fails the whole call.
package enrichment

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/lead-radar/internal/crawling"
	"github.com/jonathan/lead-radar/internal/fetch"
	"github.com/jonathan/lead-radar/internal/pagespeed"
	"github.com/jonathan/lead-radar/internal/types"
)

// DefaultMaxBatch is the largest number of sites enriched by one EnrichBatch call.
const DefaultMaxBatch = 10

// ExcerptRunes caps the landing-page text kept for LLM context.
const ExcerptRunes = 2000

// PageFetcher retrieves raw HTML documents.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// SpeedAuditor returns PageSpeed category scores for a site.
type SpeedAuditor interface {
	Fetch(ctx context.Context, url string) (*types.PageSpeedResult, error)
}

// Renderer renders JavaScript-built pages to HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Config holds the orchestrator's limits.
type Config struct {
	PageTimeout   time.Duration `json:"page_timeout" yaml:"page_timeout"`
	DetailTimeout time.Duration `json:"detail_timeout" yaml:"detail_timeout"`
	SpeedTimeout  time.Duration `json:"speed_timeout" yaml:"speed_timeout"`
	UserAgent     string        `json:"user_agent" yaml:"user_agent"`
	MaxBatch      int           `json:"max_batch" yaml:"max_batch"`
	// MaxConcurrency bounds simultaneous fetches per call; 0 means unbounded.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`
}

// DefaultConfig returns the standard timeouts and batch cap.
func DefaultConfig() Config {
	return Config{
		PageTimeout:   fetch.PageTimeout,
		DetailTimeout: fetch.DetailTimeout,
		SpeedTimeout:  pagespeed.DefaultTimeout,
		UserAgent:     fetch.DefaultUserAgent,
		MaxBatch:      DefaultMaxBatch,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PageTimeout <= 0 {
		c.PageTimeout = d.PageTimeout
	}
	if c.DetailTimeout <= 0 {
		c.DetailTimeout = d.DetailTimeout
	}
	if c.SpeedTimeout <= 0 {
		c.SpeedTimeout = d.SpeedTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = d.MaxBatch
	}
	return c
}

// Enricher orchestrates site scans and PageSpeed audits.
type Enricher struct {
	cfg      Config
	pages    PageFetcher
	speed    SpeedAuditor
	renderer Renderer
}

// Option customizes an Enricher.
type Option func(*Enricher)

// WithPageFetcher replaces the HTTP page fetcher.
func WithPageFetcher(f PageFetcher) Option {
	return func(e *Enricher) { e.pages = f }
}

// WithRenderer enables headless rendering of homepages that look client-side rendered.
func WithRenderer(r Renderer) Option {
	return func(e *Enricher) { e.renderer = r }
}

// New creates an Enricher. A nil auditor leaves PageSpeed unavailable.
func New(cfg Config, auditor SpeedAuditor, opts ...Option) *Enricher {
	cfg = cfg.withDefaults()
	e := &Enricher{
		cfg:   cfg,
		speed: auditor,
		// per-call timeouts come from the context
		pages: fetch.NewHTTPFetcher(0, cfg.UserAgent),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScanSite fetches the homepage and the known contact/about pages of a website
// concurrently and merges what the scanner finds on them. Results are merged in
// path order: emails are deduplicated and capped, the first page with a social
// profile or copyright year wins. Failed pages contribute nothing; PagesFetched
// tells an unreachable site apart from one with no contact data.
func (e *Enricher) ScanSite(ctx context.Context, websiteURL string) types.EnrichmentResult {
	result := types.NewEnrichmentResult()

	urls, err := crawling.CandidateURLs(websiteURL)
	if err != nil {
		log.Printf("[SCAN] Skipping %q: %v", websiteURL, err)
		return result
	}

	pages := settleAll(ctx, len(urls), e.cfg.MaxConcurrency, func(ctx context.Context, i int) (string, error) {
		return e.fetchPage(ctx, urls[i], e.cfg.PageTimeout)
	})

	if e.renderer != nil && pages[0].Available() && fetch.ShouldUseBrowser(pages[0].Value) {
		if html, err := e.renderer.Render(ctx, urls[0]); err == nil {
			pages[0] = Succeeded(html)
		} else {
			log.Printf("[SCAN] Render fallback failed for %s: %v", urls[0], err)
		}
	}

	emailLists := make([][]string, 0, len(pages))
	fetched := 0
	for i, page := range pages {
		if !page.Available() {
			log.Printf("[SCAN] %s unavailable: %v", urls[i], page.Err)
			continue
		}
		fetched++

		scan := crawling.Scan(page.Value)
		emailLists = append(emailLists, scan.Emails)
		for platform, link := range scan.SocialLinks {
			if _, ok := result.SocialLinks[platform]; !ok {
				result.SocialLinks[platform] = link
			}
		}
		if result.CopyrightYear == nil {
			result.CopyrightYear = scan.CopyrightYear
		}
	}
	result.Emails = crawling.MergeEmails(types.MaxEmails, emailLists...)
	result.PagesFetched = fetched

	log.Printf("[SCAN] %s: %d/%d pages fetched, %d emails, %d social links",
		websiteURL, fetched, len(urls), len(result.Emails), len(result.SocialLinks))

	return result
}

// EnrichBatch runs a PageSpeed audit and a homepage scan for each target that has
// a website, at most MaxBatch of them, all concurrently. Targets without a website
// are skipped; a call with nothing to do returns an empty map without any network
// traffic. Each entry carries whatever signals succeeded for that site.
func (e *Enricher) EnrichBatch(ctx context.Context, targets []types.SiteTarget) map[string]types.BatchEnrichment {
	results := make(map[string]types.BatchEnrichment)

	eligible := make([]types.SiteTarget, 0, len(targets))
	for _, t := range targets {
		if strings.TrimSpace(t.WebsiteURI) != "" {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return results
	}
	if len(eligible) > e.cfg.MaxBatch {
		log.Printf("[ENRICH] Batch of %d sites capped to %d", len(eligible), e.cfg.MaxBatch)
		eligible = eligible[:e.cfg.MaxBatch]
	}

	sites := settleAll(ctx, len(eligible), e.cfg.MaxConcurrency, func(ctx context.Context, i int) (types.BatchEnrichment, error) {
		return e.enrichOne(ctx, eligible[i]), nil
	})

	withSpeed, withEmails := 0, 0
	for _, s := range sites {
		if s.Value.PageSpeed != nil {
			withSpeed++
		}
		if len(s.Value.Emails) > 0 {
			withEmails++
		}
		results[s.Value.PlaceID] = s.Value
	}

	log.Printf("[ENRICH] Enriched %d sites: %d with PageSpeed, %d with emails", len(sites), withSpeed, withEmails)
	return results
}

func (e *Enricher) enrichOne(ctx context.Context, target types.SiteTarget) types.BatchEnrichment {
	speed, page := e.auditAndFetch(ctx, target.WebsiteURI, e.cfg.PageTimeout)

	entry := types.BatchEnrichment{PlaceID: target.PlaceID}
	if speed.Available() {
		entry.PageSpeed = speed.Value
	} else {
		log.Printf("[PAGESPEED] %s unavailable: %v", target.WebsiteURI, speed.Err)
	}
	if page.Available() {
		entry.Emails = crawling.ExtractEmailsDecoded(page.Value)
	} else {
		log.Printf("[ENRICH] %s homepage unavailable: %v", target.WebsiteURI, page.Err)
	}
	return entry
}

// InspectSite audits a single site for the lead detail view: PageSpeed plus a scan
// of the landing page, fetched concurrently with the detail timeout.
func (e *Enricher) InspectSite(ctx context.Context, websiteURL string) types.SiteInspection {
	var inspection types.SiteInspection
	if strings.TrimSpace(websiteURL) == "" {
		return inspection
	}

	speed, page := e.auditAndFetch(ctx, websiteURL, e.cfg.DetailTimeout)
	if speed.Available() {
		inspection.PageSpeed = speed.Value
	} else {
		log.Printf("[PAGESPEED] %s unavailable: %v", websiteURL, speed.Err)
	}
	if page.Available() {
		scan := crawling.Scan(page.Value)
		inspection.WebsiteScrape = &scan
		inspection.Excerpt = fetch.Excerpt(page.Value, ExcerptRunes)
	} else {
		log.Printf("[ENRICH] %s landing page unavailable: %v", websiteURL, page.Err)
	}
	return inspection
}

// auditAndFetch runs the PageSpeed audit and a single page fetch side by side.
func (e *Enricher) auditAndFetch(ctx context.Context, siteURL string, pageTimeout time.Duration) (Outcome[*types.PageSpeedResult], Outcome[string]) {
	var (
		speed Outcome[*types.PageSpeedResult]
		page  Outcome[string]
	)
	settleAll(ctx, 2, 0, func(ctx context.Context, i int) (struct{}, error) {
		if i == 0 {
			speed = e.audit(ctx, siteURL)
		} else {
			html, err := e.fetchPage(ctx, siteURL, pageTimeout)
			if err != nil {
				page = Failed[string](err)
			} else {
				page = Succeeded(html)
			}
		}
		return struct{}{}, nil
	})
	return speed, page
}

func (e *Enricher) audit(ctx context.Context, siteURL string) Outcome[*types.PageSpeedResult] {
	if e.speed == nil {
		return Failed[*types.PageSpeedResult](ErrUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.SpeedTimeout)
	defer cancel()

	result, err := e.speed.Fetch(ctx, siteURL)
	if err != nil {
		return Failed[*types.PageSpeedResult](err)
	}
	if result == nil {
		return Failed[*types.PageSpeedResult](ErrUnavailable)
	}
	return Succeeded(result)
}

func (e *Enricher) fetchPage(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := e.pages.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}
