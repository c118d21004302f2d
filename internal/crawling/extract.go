package crawling

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/lead-radar/internal/types"
)

var (
	emailPattern     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	copyrightPattern = regexp.MustCompile(`(?i)(?:©|&copy;|&#0*169;|&#x0*a9;)\s*(\d{4})`)

	socialPlatforms = []string{
		types.PlatformFacebook,
		types.PlatformInstagram,
		types.PlatformLinkedIn,
		types.PlatformYouTube,
	}

	socialPatterns = map[string]*regexp.Regexp{
		types.PlatformFacebook:  regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/[^\s"'<>]+`),
		types.PlatformInstagram: regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/[^\s"'<>]+`),
		types.PlatformLinkedIn:  regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/[^\s"'<>]+`),
		types.PlatformYouTube:   regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/[^\s"'<>]+`),
	}
)

// junkPatterns are substrings that mark an email-shaped match as noise:
// asset file names, error-tracking vendors, placeholders and schema/infra hosts.
var junkPatterns = []string{
	".png", ".jpg", ".svg", ".webp", ".gif", ".css", ".js",
	"wixpress", "sentry", "example.com", "email.com",
	"wordpress.org", "w3.org", "schema.org", "googleapis.com",
	"gravatar.com", "creativecommons.org",
}

// Scan extracts emails, social links and the copyright year from an HTML document.
// Malformed or empty input yields an empty result.
func Scan(html string) types.EnrichmentResult {
	return types.EnrichmentResult{
		Emails:        ExtractEmails(html),
		SocialLinks:   ExtractSocialLinks(html),
		CopyrightYear: ExtractCopyrightYear(html),
	}
}

// ExtractEmails returns up to types.MaxEmails distinct, non-junk email addresses
// in order of first appearance.
func ExtractEmails(html string) []string {
	return MergeEmails(types.MaxEmails, FilterJunkEmails(emailPattern.FindAllString(html, -1)))
}

// ExtractEmailsDecoded percent-decodes the document before extracting, so
// addresses written as mailto:info%40site.ee are found. A document that is not
// validly percent-encoded is scanned as is.
func ExtractEmailsDecoded(html string) []string {
	if decoded, err := url.PathUnescape(html); err == nil {
		html = decoded
	}
	return ExtractEmails(html)
}

// FilterJunkEmails drops matches containing a junk substring (case-insensitive).
func FilterJunkEmails(candidates []string) []string {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !IsJunkEmail(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// IsJunkEmail reports whether an email-shaped string is scraping noise.
func IsJunkEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, p := range junkPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// MergeEmails concatenates lists, dropping exact duplicates and keeping at most limit entries.
func MergeEmails(limit int, lists ...[]string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0)
	for _, list := range lists {
		for _, e := range list {
			if len(merged) >= limit {
				return merged
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			merged = append(merged, e)
		}
	}
	return merged
}

// ExtractSocialLinks returns the first profile URL found for each known platform.
func ExtractSocialLinks(html string) map[string]string {
	links := make(map[string]string)
	for _, platform := range socialPlatforms {
		if match := socialPatterns[platform].FindString(html); match != "" {
			links[platform] = match
		}
	}
	return links
}

// ExtractCopyrightYear returns the year following the first © sign, or nil.
// The glyph (or its HTML entity) is required; the word "Copyright" alone does not count.
func ExtractCopyrightYear(html string) *int {
	m := copyrightPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &year
}

// SocialPlatforms returns the platforms the scanner looks for, in lookup order.
func SocialPlatforms() []string {
	return append([]string(nil), socialPlatforms...)
}
