package places

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Places API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("places API error (%d): %s", e.StatusCode, e.Message)
}

// NotFound reports whether the API said the place does not exist.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		msg = parsed.Error.Message
	}
	return &APIError{StatusCode: status, Message: msg}
}
