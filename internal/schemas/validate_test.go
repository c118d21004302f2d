package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlaceJSON_Valid(t *testing.T) {
	doc := `{
		"id": "ChIJ123",
		"displayName": {"text": "Torumees OÜ", "languageCode": "et"},
		"rating": 4.1,
		"userRatingCount": 12,
		"websiteUri": "https://torumees.ee",
		"photos": [{"name": "places/ChIJ123/photos/a", "widthPx": 800, "heightPx": 600}],
		"types": ["plumber", "point_of_interest"],
		"pureServiceAreaBusiness": true
	}`
	assert.NoError(t, ValidatePlaceJSON(doc))
}

func TestValidatePlaceJSON_OnlyID(t *testing.T) {
	assert.NoError(t, ValidatePlaceJSON(`{"id": "x"}`))
}

func TestValidatePlaceJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing id", `{"rating": 4}`, "(root)"},
		{"rating out of range", `{"id": "x", "rating": 7}`, "rating"},
		{"count not integer", `{"id": "x", "userRatingCount": "many"}`, "userRatingCount"},
		{"photos not array", `{"id": "x", "photos": 3}`, "photos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlaceJSON(tt.doc)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateAnalysisJSON(t *testing.T) {
	assert.NoError(t, ValidateAnalysisJSON(`{"reviewSummary": "Kliendid kiidavad.", "aiPitch": "Tere!"}`))
	assert.Error(t, ValidateAnalysisJSON(`{"reviewSummary": "x"}`))
	assert.Error(t, ValidateAnalysisJSON(`{"reviewSummary": "x", "aiPitch": ""}`))
}

func TestValidate_SiteTargets(t *testing.T) {
	assert.NoError(t, Validate(SiteTargetsSchema, `[{"placeId": "a", "websiteUri": "https://a.ee"}, {"placeId": "b"}]`))
	assert.Error(t, Validate(SiteTargetsSchema, `[{"websiteUri": "https://a.ee"}]`))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", `{}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := ValidatePlaceJSON(`{"id": `)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "id", Message: "is required"},
			{Field: "rating", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. id")
	assert.Contains(t, errorMsg, "2. rating")
}
