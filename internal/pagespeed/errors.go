package pagespeed

import "fmt"

// Error represents a failed or unusable PageSpeed audit.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pagespeed error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("pagespeed error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
