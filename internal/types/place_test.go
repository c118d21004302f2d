package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }

func TestNormalize_AllFieldsMissing(t *testing.T) {
	p := &Place{ID: "abc"}

	rec := p.Normalize()

	assert.Equal(t, BusinessRecord{}, rec)
	assert.False(t, rec.HasWebsite())
}

func TestNormalize_NilPlace(t *testing.T) {
	var p *Place
	assert.Equal(t, BusinessRecord{}, p.Normalize())
}

func TestNormalize_PopulatedPlace(t *testing.T) {
	p := &Place{
		ID:                      "abc",
		WebsiteURI:              "https://acme.ee",
		Rating:                  floatPtr(3.8),
		UserRatingCount:         intPtr(12),
		Photos:                  []Photo{{Name: "a"}, {Name: "b"}},
		RegularOpeningHours:     &OpeningHours{},
		EditorialSummary:        &LocalizedText{Text: "Plumbing since 1990"},
		NationalPhoneNumber:     "5555 1234",
		PureServiceAreaBusiness: boolPtr(true),
		PrimaryType:             "plumber",
		Types:                   []string{"plumber", "point_of_interest"},
	}

	rec := p.Normalize()

	assert.Equal(t, "https://acme.ee", rec.WebsiteURL)
	assert.Equal(t, 3.8, rec.Rating)
	assert.Equal(t, 12, rec.UserRatingCount)
	assert.Equal(t, 2, rec.PhotoCount)
	assert.True(t, rec.HasOpeningHours)
	assert.True(t, rec.HasEditorialSummary)
	assert.True(t, rec.HasPhoneNumber)
	assert.True(t, rec.IsServiceAreaBusiness)
	assert.Equal(t, "plumber", rec.PrimaryType)
	assert.Equal(t, []string{"plumber", "point_of_interest"}, rec.Types)
}

func TestNormalize_NegativeReviewCountDefaultsToZero(t *testing.T) {
	p := &Place{UserRatingCount: intPtr(-3)}
	assert.Equal(t, 0, p.Normalize().UserRatingCount)
}

func TestNormalize_TypesAreCopied(t *testing.T) {
	p := &Place{Types: []string{"spa"}}
	rec := p.Normalize()
	p.Types[0] = "changed"
	assert.Equal(t, "spa", rec.Types[0])
}

func TestPlace_UnmarshalPlacesAPIPayload(t *testing.T) {
	payload := `{
		"id": "ChIJ123",
		"displayName": {"text": "Acme Torud", "languageCode": "et"},
		"websiteUri": "https://acme.ee",
		"rating": 4.1,
		"userRatingCount": 7,
		"photos": [{"name": "places/ChIJ123/photos/1", "widthPx": 800, "heightPx": 600}],
		"pureServiceAreaBusiness": true
	}`

	var p Place
	require.NoError(t, json.Unmarshal([]byte(payload), &p))

	assert.Equal(t, "Acme Torud", p.Name())
	rec := p.Normalize()
	assert.Equal(t, 4.1, rec.Rating)
	assert.Equal(t, 7, rec.UserRatingCount)
	assert.Equal(t, 1, rec.PhotoCount)
	assert.False(t, rec.HasOpeningHours)
	assert.True(t, rec.IsServiceAreaBusiness)
}

func TestPlace_NameFallback(t *testing.T) {
	p := &Place{}
	assert.Equal(t, "Unknown", p.Name())
}
