package db

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/lead-radar/internal/types"
)

// ErrLeadExists is returned when saving a place that is already saved.
var ErrLeadExists = errors.New("lead already saved")

// SavedLead represents a saved_leads row
type SavedLead struct {
	ID               uuid.UUID       `json:"id"`
	PlaceID          string          `json:"placeId"`
	Name             string          `json:"name"`
	PrimaryType      *string         `json:"primaryType"`
	FormattedAddress *string         `json:"formattedAddress"`
	Phone            *string         `json:"phone"`
	WebsiteURL       *string         `json:"websiteUrl"`
	Rating           *float64        `json:"rating"`
	ReviewCount      int             `json:"reviewCount"`
	LeadScore        int             `json:"leadScore"`
	PhotosCount      int             `json:"photosCount"`
	HasHours         bool            `json:"hasHours"`
	BusinessStatus   *string         `json:"businessStatus"`
	LocationLat      *float64        `json:"locationLat"`
	LocationLng      *float64        `json:"locationLng"`
	RawPlacesData    json.RawMessage `json:"rawPlacesData,omitempty"`
	Emails           []string        `json:"emails"`
	Notes            *string         `json:"notes"`
	EmailsScannedAt  *time.Time      `json:"emailsScannedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Website returns the lead's website URL or "".
func (l *SavedLead) Website() string {
	if l.WebsiteURL == nil {
		return ""
	}
	return *l.WebsiteURL
}

// NewLead holds the values inserted when a lead is saved.
type NewLead struct {
	PlaceID          string
	Name             string
	PrimaryType      *string
	FormattedAddress *string
	Phone            *string
	WebsiteURL       *string
	Rating           *float64
	ReviewCount      int
	LeadScore        int
	PhotosCount      int
	HasHours         bool
	BusinessStatus   *string
	LocationLat      *float64
	LocationLng      *float64
	RawPlacesData    json.RawMessage
	Emails           []string
}

// NewLeadFromPlace maps a place record, its lead score and scraped emails to row values.
func NewLeadFromPlace(p *types.Place, leadScore int, emails []string) (NewLead, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return NewLead{}, err
	}

	rec := p.Normalize()
	lead := NewLead{
		PlaceID:          p.ID,
		Name:             p.Name(),
		PrimaryType:      optional(p.PrimaryType),
		FormattedAddress: optional(p.FormattedAddress),
		Phone:            optional(p.NationalPhoneNumber),
		WebsiteURL:       optional(p.WebsiteURI),
		Rating:           p.Rating,
		ReviewCount:      rec.UserRatingCount,
		LeadScore:        leadScore,
		PhotosCount:      rec.PhotoCount,
		HasHours:         rec.HasOpeningHours,
		BusinessStatus:   optional(p.BusinessStatus),
		RawPlacesData:    raw,
	}
	if p.Location != nil {
		lat, lng := p.Location.Latitude, p.Location.Longitude
		lead.LocationLat, lead.LocationLng = &lat, &lng
	}
	if len(emails) > 0 {
		lead.Emails = emails
	}
	return lead, nil
}

// AnalysisRecord represents a lead_analyses row
type AnalysisRecord struct {
	ID                     uuid.UUID         `json:"id"`
	PlaceID                string            `json:"placeId"`
	PageSpeedPerformance   *int              `json:"pagespeedPerformance"`
	PageSpeedSEO           *int              `json:"pagespeedSeo"`
	PageSpeedAccessibility *int              `json:"pagespeedAccessibility"`
	PageSpeedBestPractices *int              `json:"pagespeedBestPractices"`
	EmailsFound            []string          `json:"emailsFound"`
	SocialLinks            map[string]string `json:"socialLinks"`
	SiteCopyrightYear      *int              `json:"siteCopyrightYear"`
	ReviewSummary          string            `json:"reviewSummary"`
	AIPitch                string            `json:"aiPitch"`
	Model                  string            `json:"model"`
	CreatedAt              time.Time         `json:"createdAt"`
}

// NewAnalysisRecord combines an LLM analysis with the enrichment data it was built from.
func NewAnalysisRecord(placeID string, a *types.LeadAnalysis, ps *types.PageSpeedResult, scan *types.EnrichmentResult, model string) AnalysisRecord {
	rec := AnalysisRecord{PlaceID: placeID, Model: model}
	if a != nil {
		rec.ReviewSummary = a.ReviewSummary
		rec.AIPitch = a.AIPitch
	}
	if ps != nil {
		rec.PageSpeedPerformance = intPtr(ps.Performance)
		rec.PageSpeedSEO = intPtr(ps.SEO)
		rec.PageSpeedAccessibility = intPtr(ps.Accessibility)
		rec.PageSpeedBestPractices = intPtr(ps.BestPractices)
	}
	if scan != nil {
		rec.EmailsFound = scan.Emails
		rec.SocialLinks = scan.SocialLinks
		rec.SiteCopyrightYear = scan.CopyrightYear
	}
	return rec
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(i int) *int {
	return &i
}

// marshalNullable encodes v as JSON, or nil (SQL NULL) for empty values.
func marshalNullable[T any](v []T) ([]byte, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
