package crawling

import (
	"net/url"
)

// contactPaths are probed on every site: the homepage followed by common
// Estonian and English contact/about pages.
var contactPaths = []string{
	"", // homepage
	"/kontakt",
	"/kontaktid",
	"/contact",
	"/contact-us",
	"/meist",
	"/about",
	"/about-us",
	"/info",
}

// ContactPaths returns the candidate paths in probe order.
func ContactPaths() []string {
	return append([]string(nil), contactPaths...)
}

// Origin returns the scheme://host part of a website URL.
func Origin(websiteURL string) (string, error) {
	parsed, err := url.Parse(websiteURL)
	if err != nil {
		return "", &ScanError{URL: websiteURL, Message: "failed to parse website URL", Cause: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", &ScanError{URL: websiteURL, Message: "website URL must have scheme and host"}
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// CandidateURLs builds the list of pages to scan for a website, in probe order.
func CandidateURLs(websiteURL string) ([]string, error) {
	origin, err := Origin(websiteURL)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(contactPaths))
	for i, p := range contactPaths {
		urls[i] = origin + p
	}
	return urls, nil
}
