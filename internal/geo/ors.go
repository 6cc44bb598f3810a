package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tripintel/tripintel/internal/domain"
)

// DefaultORSBaseURL is the hosted OpenRouteService endpoint.
const DefaultORSBaseURL = "https://api.openrouteservice.org"

// ORSRouter resolves routes for network-routable modes through the
// OpenRouteService directions API (GeoJSON variant).
type ORSRouter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewORSRouter constructs a router against the given base URL.
// The API key is required; pass DefaultORSBaseURL for the hosted service.
func NewORSRouter(apiKey, baseURL string) (*ORSRouter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ors router: api key is empty")
	}
	return &ORSRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// ResolveRoute queries the directions API with the mode's profile and
// returns the route geometry, distance, and duration.
// Returns domain.ErrUnroutable when the provider finds no path between the
// points or the provider call fails.
func (o *ORSRouter) ResolveRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (Route, error) {
	profile, ok := ProfileFor(mode)
	if !ok {
		return Route{}, fmt.Errorf("%w: mode %q has no routing profile", domain.ErrUnroutable, mode)
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{from.LonLat(), to.LonLat()},
	})
	if err != nil {
		return Route{}, fmt.Errorf("ors directions: marshal request: %w", err)
	}

	endpoint := o.baseURL + "/v2/directions/" + profile + "/geojson"
	resp, err := doWithRetry(ctx, o.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return Route{}, fmt.Errorf("%w: profile %s: %v", domain.ErrUnroutable, profile, err)
	}
	defer resp.Body.Close()

	// ORS reports "no route found" as a 404 with an error body.
	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("%w: profile %s: status %d", domain.ErrUnroutable, profile, resp.StatusCode)
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Route{}, fmt.Errorf("%w: profile %s: decode response: %v", domain.ErrUnroutable, profile, err)
	}
	if len(decoded.Features) == 0 {
		return Route{}, fmt.Errorf("%w: profile %s: no route in response", domain.ErrUnroutable, profile)
	}

	feature := decoded.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return Route{}, fmt.Errorf("%w: profile %s: degenerate geometry", domain.ErrUnroutable, profile)
	}

	geometry := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			return Route{}, fmt.Errorf("%w: profile %s: malformed coordinate in geometry", domain.ErrUnroutable, profile)
		}
		geometry = append(geometry, domain.Coordinate{Lon: pair[0], Lat: pair[1]})
	}

	return Route{
		Geometry:        geometry,
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
	}, nil
}
