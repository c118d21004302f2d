// Package places is a client for the Google Places API (New): text search,
// place details and photo media.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/lead-radar/internal/types"
)

// DefaultBaseURL is the Places API (New) root.
const DefaultBaseURL = "https://places.googleapis.com/v1"

// DefaultTimeout bounds a single Places API call.
const DefaultTimeout = 15 * time.Second

// PageSize is the number of results requested per text search page.
const PageSize = 20

// LanguageCode is the result language requested from the API.
const LanguageCode = "et"

// placeFields are the place attributes the app reads; the search mask prefixes
// them with "places." and adds the pagination token.
var placeFields = []string{
	"id",
	"displayName",
	"formattedAddress",
	"shortFormattedAddress",
	"nationalPhoneNumber",
	"internationalPhoneNumber",
	"websiteUri",
	"rating",
	"userRatingCount",
	"types",
	"primaryType",
	"primaryTypeDisplayName",
	"businessStatus",
	"pureServiceAreaBusiness",
	"regularOpeningHours",
	"photos",
	"editorialSummary",
	"googleMapsUri",
	"location",
	"reviews",
}

// SearchFieldMask returns the X-Goog-FieldMask value for text search.
func SearchFieldMask() string {
	fields := make([]string, 0, len(placeFields)+1)
	for _, f := range placeFields {
		fields = append(fields, "places."+f)
	}
	fields = append(fields, "nextPageToken")
	return strings.Join(fields, ",")
}

// DetailsFieldMask returns the X-Goog-FieldMask value for place details.
func DetailsFieldMask() string {
	return strings.Join(placeFields, ",")
}

// Config configures the Places client.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the Places API.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// New creates a Places client.
func New(cfg Config) *Client {
	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// SearchResult is one page of text search results.
type SearchResult struct {
	Places        []types.Place `json:"places"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
}

type searchRequest struct {
	TextQuery    string `json:"textQuery"`
	LanguageCode string `json:"languageCode"`
	PageSize     int    `json:"pageSize"`
	PageToken    string `json:"pageToken,omitempty"`
}

// TextQuery joins the non-empty parts of a search ("ehitusfirma", "Tartu").
func TextQuery(query, location string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{query, location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// SearchText runs a text search. pageToken continues a previous search.
func (c *Client) SearchText(ctx context.Context, query, location, pageToken string) (*SearchResult, error) {
	textQuery := TextQuery(query, location)
	if textQuery == "" && pageToken == "" {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "query or location required"}
	}

	body, err := json.Marshal(searchRequest{
		TextQuery:    textQuery,
		LanguageCode: LanguageCode,
		PageSize:     PageSize,
		PageToken:    pageToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/places:searchText", SearchFieldMask(), body, &result); err != nil {
		return nil, err
	}
	if result.Places == nil {
		result.Places = []types.Place{}
	}
	return &result, nil
}

// GetPlace fetches full details for one place.
func (c *Client) GetPlace(ctx context.Context, placeID string) (*types.Place, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "place id required"}
	}

	var place types.Place
	endpoint := c.baseURL + "/places/" + url.PathEscape(placeID)
	if err := c.do(ctx, http.MethodGet, endpoint, DetailsFieldMask(), nil, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

// Photo is the binary media of a place photo.
type Photo struct {
	ContentType string
	Data        []byte
}

// GetPhoto downloads photo media by resource name ("places/X/photos/Y").
func (c *Client) GetPhoto(ctx context.Context, name string, maxWidth int) (*Photo, error) {
	if !strings.HasPrefix(name, "places/") || strings.Contains(name, "..") {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "invalid photo name"}
	}
	if maxWidth <= 0 {
		maxWidth = 400
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("maxWidthPx", strconv.Itoa(maxWidth))
	q.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+name+"/media?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "photo fetch failed"}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Photo{ContentType: contentType, Data: data}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint, fieldMask string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read places response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode places response: %w", err)
	}
	return nil
}
