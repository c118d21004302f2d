package types

import "github.com/go-playground/validator/v10"

// SaveLeadRequest is the body of a request to save a lead.
type SaveLeadRequest struct {
	Place     *Place `json:"place" validate:"required"`
	LeadScore *int   `json:"leadScore,omitempty" validate:"omitempty,min=0,max=100"`
}

// Validate validates the SaveLeadRequest using the validator.
func (r *SaveLeadRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validate.Var(r.Place.ID, "required")
}

// DeleteLeadsRequest removes one lead or many leads at once.
type DeleteLeadsRequest struct {
	PlaceID  string   `json:"placeId,omitempty" validate:"required_without=PlaceIDs"`
	PlaceIDs []string `json:"placeIds,omitempty" validate:"required_without=PlaceID,dive,required"`
}

// Validate validates the DeleteLeadsRequest using the validator.
func (r *DeleteLeadsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// EnrichRequest is the body of a batch enrichment request.
type EnrichRequest struct {
	Places []SiteTarget `json:"places" validate:"required,min=1,dive"`
}

// Validate validates the EnrichRequest using the validator.
func (r *EnrichRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateNotesRequest replaces the free-form notes on a saved lead.
type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

// Validate validates the UpdateNotesRequest using the validator.
func (r *UpdateNotesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalyzeRequest carries the data the LLM analysis is built from.
type AnalyzeRequest struct {
	Place         *Place            `json:"place" validate:"required"`
	PageSpeed     *PageSpeedResult  `json:"pageSpeed,omitempty"`
	WebsiteScrape *EnrichmentResult `json:"websiteScrape,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// LeadAnalysis is the LLM-generated review summary and sales pitch.
type LeadAnalysis struct {
	ReviewSummary string `json:"reviewSummary"`
	AIPitch       string `json:"aiPitch"`
}
