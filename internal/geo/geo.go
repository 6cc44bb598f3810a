// Package geo resolves place names to coordinates and coordinate pairs to
// routes. External providers sit behind the Geocoder and Router interfaces
// so the service layer can be tested without network access.
package geo

import (
	"context"

	"github.com/tripintel/tripintel/internal/domain"
)

// Route is the result of resolving a route between two coordinates:
// the path geometry plus travel distance and duration.
type Route struct {
	Geometry        []domain.Coordinate
	DistanceMeters  float64
	DurationSeconds float64
}

// Geocoder resolves a place name to a coordinate.
// Implementations return domain.ErrPlaceNotFound both when the provider has
// no match and when the provider call itself fails — the outcome is always
// recoverable by the caller.
type Geocoder interface {
	ResolvePlace(ctx context.Context, name string) (domain.Coordinate, error)
}

// Router resolves a route between two coordinates for a transport mode.
// Implementations return domain.ErrUnroutable when no path exists for the
// mode's profile or when the provider call fails.
type Router interface {
	ResolveRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (Route, error)
}

// ProfileFor maps a transport mode to the routing provider's profile name.
// Fly and train have no network profile; they are estimated locally.
func ProfileFor(mode domain.TransportMode) (string, bool) {
	switch mode {
	case domain.ModeWalk:
		return "foot-walking", true
	case domain.ModeHike:
		return "foot-hiking", true
	case domain.ModeBike:
		return "cycling-regular", true
	case domain.ModeDrive:
		return "driving-car", true
	}
	return "", false
}
