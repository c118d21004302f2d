// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/lead-radar/internal/crawling"
	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads by rune count so non-ASCII names keep the box aligned.
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= boxWidth-4 {
		return s
	}
	return s + strings.Repeat(" ", boxWidth-4-n)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// PrintScore outputs a lead score breakdown with its bucket.
func (p *Printer) PrintScore(name string, score types.ScoreBreakdown) {
	bucket := scoring.Bucket(score.Total)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Business: %s\n", name))
	sb.WriteString(fmt.Sprintf("Total:    %d/100 (%s)\n\n", score.Total, bucket.Label))
	sb.WriteString(fmt.Sprintf("  Web presence:         %2d/%d\n", score.WebPresence, types.MaxWebPresence))
	sb.WriteString(fmt.Sprintf("  Profile completeness: %2d/%d\n", score.ProfileCompleteness, types.MaxProfileCompleteness))
	sb.WriteString(fmt.Sprintf("  Review health:        %2d/%d\n", score.ReviewHealth, types.MaxReviewHealth))
	sb.WriteString(fmt.Sprintf("  Contactability:       %2d/%d\n", score.Contactability, types.MaxContactability))
	sb.WriteString(fmt.Sprintf("  Service fit:          %2d/%d", score.ServiceFit, types.MaxServiceFit))

	p.printBox("LEAD SCORE", sb.String())
}

// PrintEnrichment outputs the contact data found on a site.
func (p *Printer) PrintEnrichment(site string, result types.EnrichmentResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Site: %s\n\n", site))

	if len(result.Emails) == 0 {
		sb.WriteString("Emails: none found\n")
	} else {
		sb.WriteString(fmt.Sprintf("Emails (%d):\n", len(result.Emails)))
		count := min(len(result.Emails), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Emails[i]))
		}
		if len(result.Emails) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Emails)-maxItemsToShow))
		}
	}

	if len(result.SocialLinks) > 0 {
		sb.WriteString("\nSocial:\n")
		for _, platform := range crawling.SocialPlatforms() {
			if link, ok := result.SocialLinks[platform]; ok {
				sb.WriteString(fmt.Sprintf("  %-10s %s\n", platform, link))
			}
		}
	}

	if result.CopyrightYear != nil {
		sb.WriteString(fmt.Sprintf("\nCopyright: %d\n", *result.CopyrightYear))
	}

	if result.IsEmpty() {
		paths := crawling.ContactPaths()
		for i, path := range paths {
			if path == "" {
				paths[i] = "/"
			}
		}
		sb.WriteString(fmt.Sprintf("\nNothing found on: %s\n", strings.Join(paths, ", ")))
	}

	p.printBox("WEBSITE SCAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatch outputs the per-site results of a batch enrichment, sorted by place ID.
func (p *Printer) PrintBatch(results map[string]types.BatchEnrichment) {
	if len(results) == 0 {
		p.printBox("BATCH ENRICHMENT", "No sites enriched")
		return
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Enriched %d sites:\n\n", len(ids)))
	for i, id := range ids {
		r := results[id]
		sb.WriteString(fmt.Sprintf("%s\n", id))
		if r.PageSpeed != nil {
			sb.WriteString(fmt.Sprintf("  perf %d · seo %d · a11y %d · bp %d\n",
				r.PageSpeed.Performance, r.PageSpeed.SEO, r.PageSpeed.Accessibility, r.PageSpeed.BestPractices))
		} else {
			sb.WriteString("  PageSpeed: unavailable\n")
		}
		switch {
		case r.Emails == nil:
			sb.WriteString("  Emails: unavailable\n")
		case len(r.Emails) == 0:
			sb.WriteString("  Emails: none found\n")
		default:
			sb.WriteString(fmt.Sprintf("  Emails: %s\n", strings.Join(r.Emails, ", ")))
		}
		if i < len(ids)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("BATCH ENRICHMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlaces outputs scored search results, in the order given.
func (p *Printer) PrintPlaces(places []scoring.ScoredPlace) {
	if len(places) == 0 {
		p.printBox("SEARCH RESULTS", "No places found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d places:\n\n", len(places)))
	for i := range places {
		sp := &places[i]
		sb.WriteString(fmt.Sprintf("%3d  %-5s %s\n", sp.LeadScore.Total, sp.Bucket.Label, sp.Name()))
		if sp.WebsiteURI != "" {
			sb.WriteString(fmt.Sprintf("           %s\n", sp.WebsiteURI))
		}
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the LLM review summary and pitch.
func (p *Printer) PrintAnalysis(name string, analysis *types.LeadAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Business: %s\n\n", name))
	if analysis.ReviewSummary != "" {
		sb.WriteString("Reviews:\n")
		sb.WriteString(wrap(analysis.ReviewSummary, boxWidth-6, "  "))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Pitch:\n")
	sb.WriteString(wrap(analysis.AIPitch, boxWidth-6, "  "))

	p.printBox("LEAD ANALYSIS", sb.String())
}

// wrap breaks text on spaces into lines of at most width runes.
func wrap(text string, width int, indent string) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, indent+line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, indent+line.String())
	}
	return strings.Join(lines, "\n")
}
