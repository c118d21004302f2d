package types

// Social platforms recognized by the content scanner.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
	PlatformYouTube   = "youtube"
)

// MaxEmails caps the number of email addresses kept per scan.
const MaxEmails = 10

// EnrichmentResult holds the contact data scraped from one site.
type EnrichmentResult struct {
	Emails        []string          `json:"emails"`
	SocialLinks   map[string]string `json:"socialLinks"`
	CopyrightYear *int              `json:"copyrightYear,omitempty"`

	// PagesFetched counts the pages that were actually retrieved. Zero means
	// the site could not be reached, which is not the same as "nothing found".
	PagesFetched int `json:"-"`
}

// NewEnrichmentResult returns an empty, non-nil result.
func NewEnrichmentResult() EnrichmentResult {
	return EnrichmentResult{
		Emails:      []string{},
		SocialLinks: map[string]string{},
	}
}

// Reached reports whether at least one page of the site was fetched.
func (r EnrichmentResult) Reached() bool {
	return r.PagesFetched > 0
}

// IsEmpty reports whether the scan found nothing at all.
func (r EnrichmentResult) IsEmpty() bool {
	return len(r.Emails) == 0 && len(r.SocialLinks) == 0 && r.CopyrightYear == nil
}

// PageSpeedResult holds the four Lighthouse category scores (0-100).
type PageSpeedResult struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
}

// SiteTarget is one entry of a batch enrichment request.
type SiteTarget struct {
	PlaceID    string `json:"placeId" validate:"required"`
	WebsiteURI string `json:"websiteUri"`
}

// BatchEnrichment is the per-site result of a batch enrichment.
// Either field may be absent independently of the other.
type BatchEnrichment struct {
	PlaceID   string           `json:"placeId"`
	PageSpeed *PageSpeedResult `json:"pageSpeed"`
	Emails    []string         `json:"emails"`
}

// SiteInspection is the detail-view enrichment of a single site:
// a PageSpeed audit plus a scan of the landing page.
type SiteInspection struct {
	PageSpeed     *PageSpeedResult  `json:"pageSpeed"`
	WebsiteScrape *EnrichmentResult `json:"websiteScrape"`
	// Excerpt is the main text of the landing page, used as LLM context.
	Excerpt string `json:"-"`
}
