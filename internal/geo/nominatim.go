package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tripintel/tripintel/internal/domain"
)

// DefaultNominatimBaseURL is the public OpenStreetMap Nominatim endpoint.
const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// nominatimUserAgent identifies the application to the Nominatim service,
// which rejects requests without a descriptive User-Agent.
const nominatimUserAgent = "tripintel/1.0"

// NominatimGeocoder resolves place names through the OpenStreetMap Nominatim
// search API.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder constructs a geocoder against the given base URL.
// Pass DefaultNominatimBaseURL for the public service, or a test server URL.
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Nominatim encodes coordinates as JSON strings, not numbers.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// ResolvePlace looks up name and returns its coordinate.
// Returns domain.ErrPlaceNotFound when the provider has no match or the
// provider call fails.
func (g *NominatimGeocoder) ResolvePlace(ctx context.Context, name string) (domain.Coordinate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Coordinate{}, fmt.Errorf("%w: place name is required", domain.ErrValidation)
	}

	endpoint := g.baseURL + "/search"
	resp, err := doWithRetry(ctx, g.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("q", name)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("User-Agent", nominatimUserAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: %v", domain.ErrPlaceNotFound, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: unexpected status %d", domain.ErrPlaceNotFound, name, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: decode response: %v", domain.ErrPlaceNotFound, name, err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("%w: %q", domain.ErrPlaceNotFound, name)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: malformed latitude %q", domain.ErrPlaceNotFound, name, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: malformed longitude %q", domain.ErrPlaceNotFound, name, results[0].Lon)
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
