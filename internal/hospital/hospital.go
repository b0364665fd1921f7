// Package hospital finds hospitals near a free-text location using the
// OpenStreetMap Nominatim search API.
//
// Nominatim is a public geocoding service with a usage policy that
// requires an identifying User-Agent on every request. Results are never
// persisted — the locator is a pure lookup at analysis time.
package hospital

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Search statuses, mirrored into the API response so the UI can tell
// "nothing nearby" apart from "the lookup broke".
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusError       = "ERROR"
)

// Hospital is one search hit: a display name and coordinates.
type Hospital struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Result is the outcome of one search. Err holds the underlying failure
// when Status is ERROR; Results is always non-nil.
type Result struct {
	Status   string     `json:"status"`
	Results  []Hospital `json:"results"`
	ErrorMsg string     `json:"error,omitempty"`
}

// Locator performs nearby-hospital searches. Behind an interface so the
// analysis service can be tested without network access.
type Locator interface {
	Search(ctx context.Context, location string) Result
}

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "HealthFinderApp/1.0"
	resultLimit    = 15
)

// NominatimLocator queries the public Nominatim instance.
type NominatimLocator struct {
	baseURL string
	client  *http.Client
}

// New creates a locator against the public endpoint.
func New() *NominatimLocator {
	return &NominatimLocator{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL targets a custom endpoint. Used in tests.
func NewWithBaseURL(baseURL string) *NominatimLocator {
	l := New()
	l.baseURL = baseURL
	return l
}

// nominatimHit is the slice element Nominatim returns. Coordinates come
// back as strings, not numbers.
type nominatimHit struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search looks up hospitals near the given free-text location. Failures
// are folded into the Result status rather than returned as an error —
// the analysis flow renders whatever status comes back and carries on.
func (l *NominatimLocator) Search(ctx context.Context, location string) Result {
	params := url.Values{}
	params.Set("q", "hospital near "+location)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		l.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return errorResult(fmt.Errorf("hospital: building request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return errorResult(fmt.Errorf("hospital: calling search API: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorResult(fmt.Errorf("hospital: search API returned status %d", resp.StatusCode))
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return errorResult(fmt.Errorf("hospital: decoding response: %w", err))
	}

	if len(hits) == 0 {
		return Result{Status: StatusZeroResults, Results: []Hospital{}}
	}

	hospitals := make([]Hospital, 0, len(hits))
	for _, h := range hits {
		lat, latErr := strconv.ParseFloat(h.Lat, 64)
		lon, lonErr := strconv.ParseFloat(h.Lon, 64)
		if latErr != nil || lonErr != nil {
			// Skip hits with unparseable coordinates rather than failing
			// the whole search.
			continue
		}
		name := h.DisplayName
		if name == "" {
			name = "Unnamed Hospital"
		}
		hospitals = append(hospitals, Hospital{Name: name, Latitude: lat, Longitude: lon})
	}

	if len(hospitals) == 0 {
		return Result{Status: StatusZeroResults, Results: []Hospital{}}
	}
	return Result{Status: StatusOK, Results: hospitals}
}

func errorResult(err error) Result {
	return Result{Status: StatusError, Results: []Hospital{}, ErrorMsg: err.Error()}
}
