// Package types provides type definitions for structured data used throughout the lead-radar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// LocalizedText is a text value tagged with its language, as returned by the Places API.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// TimeOfWeek is one end of an opening period.
type TimeOfWeek struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// OpeningPeriod is a single open/close interval.
type OpeningPeriod struct {
	Open  TimeOfWeek  `json:"open"`
	Close *TimeOfWeek `json:"close,omitempty"`
}

// OpeningHours describes the regular opening hours of a place
type OpeningHours struct {
	OpenNow             *bool           `json:"openNow,omitempty"`
	Periods             []OpeningPeriod `json:"periods,omitempty"`
	WeekdayDescriptions []string        `json:"weekdayDescriptions,omitempty"`
}

// Photo is a photo reference attached to a place.
type Photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

// AuthorAttribution identifies the author of a review
type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri,omitempty"`
	PhotoURI    string `json:"photoUri,omitempty"`
}

// Review is a single customer review of a place.
type Review struct {
	Name                           string             `json:"name,omitempty"`
	RelativePublishTimeDescription string             `json:"relativePublishTimeDescription,omitempty"`
	Text                           *LocalizedText     `json:"text,omitempty"`
	OriginalText                   *LocalizedText     `json:"originalText,omitempty"`
	Rating                         float64            `json:"rating"`
	AuthorAttribution              *AuthorAttribution `json:"authorAttribution,omitempty"`
	PublishTime                    string             `json:"publishTime,omitempty"`
	GoogleMapsURI                  string             `json:"googleMapsUri,omitempty"`
}

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a business record as returned by the place-search provider.
// Every field except ID may be absent; absence is represented by nil pointers,
// empty strings and nil slices.
type Place struct {
	ID                       string         `json:"id"`
	DisplayName              *LocalizedText `json:"displayName,omitempty"`
	FormattedAddress         string         `json:"formattedAddress,omitempty"`
	ShortFormattedAddress    string         `json:"shortFormattedAddress,omitempty"`
	NationalPhoneNumber      string         `json:"nationalPhoneNumber,omitempty"`
	InternationalPhoneNumber string         `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI               string         `json:"websiteUri,omitempty"`
	Rating                   *float64       `json:"rating,omitempty"`
	UserRatingCount          *int           `json:"userRatingCount,omitempty"`
	Types                    []string       `json:"types,omitempty"`
	PrimaryType              string         `json:"primaryType,omitempty"`
	PrimaryTypeDisplayName   *LocalizedText `json:"primaryTypeDisplayName,omitempty"`
	BusinessStatus           string         `json:"businessStatus,omitempty"`
	PureServiceAreaBusiness  *bool          `json:"pureServiceAreaBusiness,omitempty"`
	RegularOpeningHours      *OpeningHours  `json:"regularOpeningHours,omitempty"`
	Photos                   []Photo        `json:"photos,omitempty"`
	EditorialSummary         *LocalizedText `json:"editorialSummary,omitempty"`
	Reviews                  []Review       `json:"reviews,omitempty"`
	GoogleMapsURI            string         `json:"googleMapsUri,omitempty"`
	Location                 *Location      `json:"location,omitempty"`
}

// Name returns the display name of the place, or "Unknown" when it is missing.
func (p *Place) Name() string {
	if p.DisplayName == nil || p.DisplayName.Text == "" {
		return "Unknown"
	}
	return p.DisplayName.Text
}

// BusinessRecord is the normalized view of a Place that the lead scorer reads.
// Every field has a defined value; absent inputs have already been defaulted.
type BusinessRecord struct {
	WebsiteURL            string   `json:"websiteUrl,omitempty"`
	Rating                float64  `json:"rating"`
	UserRatingCount       int      `json:"userRatingCount"`
	PhotoCount            int      `json:"photoCount"`
	HasOpeningHours       bool     `json:"hasOpeningHours"`
	HasEditorialSummary   bool     `json:"hasEditorialSummary"`
	HasPhoneNumber        bool     `json:"hasPhoneNumber"`
	IsServiceAreaBusiness bool     `json:"isServiceAreaBusiness"`
	PrimaryType           string   `json:"primaryType,omitempty"`
	Types                 []string `json:"types,omitempty"`
}

// HasWebsite reports whether the business lists a website.
func (r BusinessRecord) HasWebsite() bool {
	return r.WebsiteURL != ""
}

// Normalize converts a raw Place into a BusinessRecord.
// Missing rating and review count become 0, missing photos count as 0,
// and missing flags become false. Negative counts are treated as 0.
func (p *Place) Normalize() BusinessRecord {
	if p == nil {
		return BusinessRecord{}
	}

	rec := BusinessRecord{
		WebsiteURL:          p.WebsiteURI,
		PhotoCount:          len(p.Photos),
		HasOpeningHours:     p.RegularOpeningHours != nil,
		HasEditorialSummary: p.EditorialSummary != nil,
		HasPhoneNumber:      p.NationalPhoneNumber != "",
		PrimaryType:         p.PrimaryType,
	}

	if p.Rating != nil {
		rec.Rating = *p.Rating
	}
	if p.UserRatingCount != nil && *p.UserRatingCount > 0 {
		rec.UserRatingCount = *p.UserRatingCount
	}
	if p.PureServiceAreaBusiness != nil {
		rec.IsServiceAreaBusiness = *p.PureServiceAreaBusiness
	}
	if len(p.Types) > 0 {
		rec.Types = append([]string(nil), p.Types...)
	}

	return rec
}
