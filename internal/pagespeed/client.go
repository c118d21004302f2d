// Package pagespeed queries the PageSpeed Insights API for Lighthouse category scores.
package pagespeed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/pagespeedonline/v5"

	"github.com/jonathan/lead-radar/internal/types"
)

// DefaultBaseURL is the PageSpeed Insights API root.
const DefaultBaseURL = "https://pagespeedonline.googleapis.com/"

// DefaultTimeout bounds a single audit; Lighthouse runs are slow.
const DefaultTimeout = 30 * time.Second

// Lighthouse category identifiers.
const (
	CategoryPerformance   = "performance"
	CategorySEO           = "seo"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
)

var categories = []string{CategoryPerformance, CategorySEO, CategoryAccessibility, CategoryBestPractices}

// Config configures the PageSpeed client.
type Config struct {
	APIKey     string
	BaseURL    string
	Strategy   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches PageSpeed audits.
type Client struct {
	apiKey   string
	baseURL  string
	strategy string
	timeout  time.Duration
	svc      *pagespeedonline.Service
	initErr  error
}

// New creates a client, filling unset config fields with defaults.
func New(cfg Config) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		strategy: strings.ToUpper(cfg.Strategy),
		timeout:  cfg.Timeout,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.strategy == "" {
		c.strategy = "MOBILE"
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	// The API key travels as a query parameter on each call: option.WithAPIKey
	// is ignored once a custom HTTP client is supplied.
	c.svc, c.initErr = pagespeedonline.NewService(context.Background(),
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(c.baseURL),
	)
	return c
}

// Fetch runs an audit for siteURL and returns the four category scores (0-100).
// A response missing any of the categories is an error.
func (c *Client) Fetch(ctx context.Context, siteURL string) (*types.PageSpeedResult, error) {
	if c.initErr != nil {
		return nil, &Error{URL: siteURL, Message: "failed to create service", Cause: c.initErr}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var opts []googleapi.CallOption
	if c.apiKey != "" {
		opts = append(opts, googleapi.QueryParameter("key", c.apiKey))
	}

	resp, err := c.svc.Pagespeedapi.Runpagespeed(siteURL).
		Category(categories...).
		Strategy(c.strategy).
		Context(ctx).
		Do(opts...)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &Error{URL: siteURL, StatusCode: apiErr.Code, Message: fmt.Sprintf("HTTP status %d", apiErr.Code), Cause: err}
		}
		return nil, &Error{URL: siteURL, Message: "request failed", Cause: err}
	}

	return Scores(siteURL, resp)
}

// Scores converts a PageSpeed API response into category scores.
func Scores(siteURL string, resp *pagespeedonline.PagespeedApiPagespeedResponseV5) (*types.PageSpeedResult, error) {
	if resp == nil || resp.LighthouseResult == nil || resp.LighthouseResult.Categories == nil {
		return nil, &Error{URL: siteURL, Message: "response has no lighthouseResult"}
	}
	cats := resp.LighthouseResult.Categories
	byName := map[string]*pagespeedonline.LighthouseCategoryV5{
		CategoryPerformance:   cats.Performance,
		CategorySEO:           cats.Seo,
		CategoryAccessibility: cats.Accessibility,
		CategoryBestPractices: cats.BestPractices,
	}

	scores := make(map[string]int, len(categories))
	for _, cat := range categories {
		score, ok := categoryScore(byName[cat])
		if !ok {
			return nil, &Error{URL: siteURL, Message: fmt.Sprintf("missing category %q", cat)}
		}
		scores[cat] = score
	}

	return &types.PageSpeedResult{
		Performance:   scores[CategoryPerformance],
		SEO:           scores[CategorySEO],
		Accessibility: scores[CategoryAccessibility],
		BestPractices: scores[CategoryBestPractices],
	}, nil
}

// categoryScore turns a Lighthouse 0-1 score into 0-100, clamped.
func categoryScore(cat *pagespeedonline.LighthouseCategoryV5) (int, bool) {
	if cat == nil {
		return 0, false
	}
	raw, ok := cat.Score.(float64)
	if !ok {
		return 0, false
	}
	score := int(math.Round(raw * 100))
	return max(0, min(100, score)), true
}
