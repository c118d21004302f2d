// Package crawling scans website HTML for contact data: emails, social profiles and copyright years.
package crawling

import "fmt"

// ScanError represents a failure to prepare a site scan, such as an unusable website URL
type ScanError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scan error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scan error for %s: %s", e.URL, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}
