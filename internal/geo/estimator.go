package geo

import (
	"context"
	"fmt"
	"math"

	"github.com/tripintel/tripintel/internal/domain"
)

const earthRadiusMeters = 6371000

// Assumed cruising speeds for locally estimated modes, in meters per second.
const (
	flySpeedMPS   = 166 // ≈600 km/h
	trainSpeedMPS = 542
)

// Haversine returns the great-circle distance between two coordinates in
// meters, under a spherical-earth approximation.
func Haversine(a, b domain.Coordinate) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaPhi := (b.Lat - a.Lat) * math.Pi / 180
	deltaLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Estimator resolves fly and train routes locally: great-circle distance,
// duration from an assumed cruising speed, and a two-point straight-line
// geometry. It performs no I/O and never fails for finite coordinates.
type Estimator struct{}

// ResolveRoute implements Router for the non-network modes.
func (Estimator) ResolveRoute(_ context.Context, from, to domain.Coordinate, mode domain.TransportMode) (Route, error) {
	var speed float64
	switch mode {
	case domain.ModeFly:
		speed = flySpeedMPS
	case domain.ModeTrain:
		speed = trainSpeedMPS
	default:
		return Route{}, fmt.Errorf("%w: mode %q is not estimated locally", domain.ErrUnroutable, mode)
	}

	distance := Haversine(from, to)
	return Route{
		Geometry:        []domain.Coordinate{from, to},
		DistanceMeters:  distance,
		DurationSeconds: distance / speed,
	}, nil
}
