// Package analysis asks an LLM for a review summary and an Estonian outreach pitch
// for a lead, using the place record and whatever enrichment data is available.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/prompts"
	"github.com/jonathan/lead-radar/internal/schemas"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

// MaxReviews caps how many reviews are quoted in the prompt.
const MaxReviews = 10

// Input is everything the prompt is built from.
type Input struct {
	Place         *types.Place
	PageSpeed     *types.PageSpeedResult
	WebsiteScrape *types.EnrichmentResult
	// Excerpt is optional landing-page text.
	Excerpt string
}

// ParseError means the LLM reply held no usable analysis.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Analyze builds the prompt, calls the LLM and parses its JSON reply.
func Analyze(ctx context.Context, client llm.Client, in Input) (*types.LeadAnalysis, error) {
	if in.Place == nil {
		return nil, fmt.Errorf("place is required")
	}

	prompt, err := BuildPrompt(in)
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYSIS] Analyzing %s with %s", in.Place.Name(), client.GetModel(llm.TierStandard))
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM analysis failed: %w", err)
	}

	return ParseResponse(raw)
}

// ParseResponse extracts and validates the analysis object from an LLM reply.
func ParseResponse(raw string) (*types.LeadAnalysis, error) {
	obj := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if obj == "" {
		return nil, &ParseError{Message: "no JSON object in response", Raw: raw}
	}

	if err := schemas.ValidateAnalysisJSON(obj); err != nil {
		return nil, &ParseError{Message: "response does not match analysis schema", Raw: raw, Cause: err}
	}

	var out types.LeadAnalysis
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return nil, &ParseError{Message: "invalid JSON", Raw: raw, Cause: err}
	}
	return &out, nil
}

// BuildPrompt renders the lead analysis prompt.
func BuildPrompt(in Input) (string, error) {
	p := in.Place
	rec := p.Normalize()
	score := scoring.Score(rec)

	speedSection, err := pageSpeedSection(in.PageSpeed)
	if err != nil {
		return "", err
	}
	scrapeSection, err := scrapeSection(in.WebsiteScrape)
	if err != nil {
		return "", err
	}
	excerptSection := ""
	if strings.TrimSpace(in.Excerpt) != "" {
		excerptSection, err = prompts.Render(prompts.LeadsFile, "excerpt-section", map[string]string{
			"Excerpt": in.Excerpt,
		})
		if err != nil {
			return "", err
		}
	}

	rating := "N/A"
	if p.Rating != nil {
		rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
	}

	return prompts.Render(prompts.LeadsFile, "lead-analysis", map[string]string{
		"Name":             p.Name(),
		"PrimaryType":      orDefault(p.PrimaryType, "unknown"),
		"Address":          orDefault(p.FormattedAddress, "unknown"),
		"Rating":           rating,
		"ReviewCount":      strconv.Itoa(rec.UserRatingCount),
		"Website":          orDefault(p.WebsiteURI, "None"),
		"Phone":            orDefault(p.NationalPhoneNumber, "None"),
		"HasHours":         yesNo(rec.HasOpeningHours),
		"PhotoCount":       strconv.Itoa(rec.PhotoCount),
		"LeadScore":        strconv.Itoa(score.Total),
		"PageSpeedSection": speedSection,
		"ScrapeSection":    scrapeSection,
		"ExcerptSection":   excerptSection,
		"Reviews":          orDefault(FormatReviews(p.Reviews), "No reviews available"),
	})
}

// FormatReviews renders up to MaxReviews reviews that have text as "[rating/5] text" lines.
func FormatReviews(reviews []types.Review) string {
	lines := make([]string, 0, MaxReviews)
	for _, r := range reviews {
		if len(lines) == MaxReviews {
			break
		}
		if r.Text == nil || strings.TrimSpace(r.Text.Text) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s/5] %s", strconv.FormatFloat(r.Rating, 'f', -1, 64), r.Text.Text))
	}
	return strings.Join(lines, "\n")
}

func pageSpeedSection(ps *types.PageSpeedResult) (string, error) {
	if ps == nil {
		return prompts.Get(prompts.LeadsFile, "pagespeed-missing")
	}
	return prompts.Render(prompts.LeadsFile, "pagespeed-section", map[string]string{
		"Performance":   strconv.Itoa(ps.Performance),
		"SEO":           strconv.Itoa(ps.SEO),
		"Accessibility": strconv.Itoa(ps.Accessibility),
		"BestPractices": strconv.Itoa(ps.BestPractices),
	})
}

func scrapeSection(scan *types.EnrichmentResult) (string, error) {
	if scan == nil {
		return "", nil
	}

	platforms := make([]string, 0, len(scan.SocialLinks))
	for platform := range scan.SocialLinks {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	socials := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		socials = append(socials, platform+": "+scan.SocialLinks[platform])
	}

	year := "Not found"
	if scan.CopyrightYear != nil {
		year = strconv.Itoa(*scan.CopyrightYear)
	}

	return prompts.Render(prompts.LeadsFile, "scrape-section", map[string]string{
		"Emails":        orDefault(strings.Join(scan.Emails, ", "), "None"),
		"SocialLinks":   orDefault(strings.Join(socials, ", "), "None"),
		"CopyrightYear": year,
	})
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
