package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/lead-radar/internal/analysis"
	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/schemas"
	"github.com/jonathan/lead-radar/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	fieldErr := (&types.UpdateNotesRequest{Notes: string(make([]byte, 10001))}).Validate()
	var fields validator.ValidationErrors
	if !errors.As(fieldErr, &fields) {
		t.Fatalf("expected validator errors, got %T", fieldErr)
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", &ErrNotFound{Resource: "Lead", ID: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "Place", ID: "x"}), http.StatusNotFound},
		{"validation", &ErrValidation{Field: "body", Message: "bad"}, http.StatusBadRequest},
		{"validator", fieldErr, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "id", Message: "required"}}}, http.StatusBadRequest},
		{"duplicate lead", fmt.Errorf("save: %w", db.ErrLeadExists), http.StatusConflict},
		{"places 400", &places.APIError{StatusCode: 400, Message: "bad query"}, http.StatusBadRequest},
		{"places 404", &places.APIError{StatusCode: 404}, http.StatusNotFound},
		{"places 500", &places.APIError{StatusCode: 503}, http.StatusBadGateway},
		{"llm parse", &analysis.ParseError{Message: "no JSON"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrValidation{Field: "body", Message: "Invalid request body: EOF"}, "Invalid request body: EOF"},
		{&places.APIError{StatusCode: 400, Message: "city required"}, "city required"},
		{&ErrNotFound{Resource: "Place", ID: "abc"}, "Place not found: abc"},
		{db.ErrLeadExists, "Lead already saved"},
		{errors.New("internal detail"), "fallback"},
	}
	for _, tt := range tests {
		if got := publicMessage(tt.err, "fallback"); got != tt.want {
			t.Errorf("publicMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
