package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveLeadRequest_Validate(t *testing.T) {
	score := 55
	tooHigh := 101

	tests := []struct {
		name    string
		request SaveLeadRequest
		wantErr bool
	}{
		{"valid", SaveLeadRequest{Place: &Place{ID: "p1"}}, false},
		{"valid with score", SaveLeadRequest{Place: &Place{ID: "p1"}, LeadScore: &score}, false},
		{"missing place", SaveLeadRequest{}, true},
		{"missing place id", SaveLeadRequest{Place: &Place{}}, true},
		{"score out of range", SaveLeadRequest{Place: &Place{ID: "p1"}, LeadScore: &tooHigh}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteLeadsRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request DeleteLeadsRequest
		wantErr bool
	}{
		{"single", DeleteLeadsRequest{PlaceID: "a"}, false},
		{"many", DeleteLeadsRequest{PlaceIDs: []string{"a", "b"}}, false},
		{"neither", DeleteLeadsRequest{}, true},
		{"blank id in list", DeleteLeadsRequest{PlaceIDs: []string{"a", ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnrichRequest_Validate(t *testing.T) {
	assert.NoError(t, (&EnrichRequest{Places: []SiteTarget{{PlaceID: "a", WebsiteURI: "https://a.ee"}}}).Validate())
	assert.NoError(t, (&EnrichRequest{Places: []SiteTarget{{PlaceID: "a"}}}).Validate(), "website is optional")
	assert.Error(t, (&EnrichRequest{}).Validate())
	assert.Error(t, (&EnrichRequest{Places: []SiteTarget{}}).Validate())
	assert.Error(t, (&EnrichRequest{Places: []SiteTarget{{WebsiteURI: "https://a.ee"}}}).Validate())
}

func TestUpdateNotesRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateNotesRequest{}).Validate(), "clearing notes is allowed")
	assert.NoError(t, (&UpdateNotesRequest{Notes: "Helistada"}).Validate())
	assert.Error(t, (&UpdateNotesRequest{Notes: strings.Repeat("x", 10001)}).Validate())
}

func TestAnalyzeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AnalyzeRequest{Place: &Place{ID: "a"}}).Validate())
	assert.Error(t, (&AnalyzeRequest{}).Validate())
}

func TestEnrichmentResult_IsEmpty(t *testing.T) {
	r := NewEnrichmentResult()
	assert.True(t, r.IsEmpty())
	assert.NotNil(t, r.Emails)
	assert.NotNil(t, r.SocialLinks)

	year := 2019
	r.CopyrightYear = &year
	assert.False(t, r.IsEmpty())
	assert.False(t, EnrichmentResult{Emails: []string{"a@b.ee"}}.IsEmpty())
}

func TestEnrichmentResult_Reached(t *testing.T) {
	assert.False(t, NewEnrichmentResult().Reached())
	assert.True(t, EnrichmentResult{PagesFetched: 1}.Reached())
	assert.True(t, EnrichmentResult{PagesFetched: 1}.IsEmpty(), "reached but nothing found")
}
