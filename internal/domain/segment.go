package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// geometryEndpointTolerance is the maximum allowed distance, in decimal
// degrees per axis, between a segment endpoint and the first/last point of
// its route geometry. Routing providers snap coordinates to the nearest
// road, so exact equality cannot be required.
const geometryEndpointTolerance = 0.05

// Segment is one directed leg of travel between two places.
// Segments are constructed only through Itinerary operations — never built
// standalone with unresolved coordinates.
type Segment struct {
	ID              uuid.UUID     `json:"id"`
	FromPlace       string        `json:"from_place"`
	ToPlace         string        `json:"to_place"`
	FromCoord       Coordinate    `json:"from_coord"`
	ToCoord         Coordinate    `json:"to_coord"`
	DepartureAt     time.Time     `json:"departure_at"`
	ArrivalAt       time.Time     `json:"arrival_at"`
	Mode            TransportMode `json:"mode"`
	Notes           string        `json:"notes,omitempty"`
	DistanceMeters  float64       `json:"distance_m"`
	DurationSeconds float64       `json:"duration_s"`
	Geometry        []Coordinate  `json:"geometry"`
	SortOrder       int           `json:"sort_order"`
}

// SecondsToDuration converts a fractional-second value into a time.Duration.
// All arrival time arithmetic goes through this helper so the stored
// ArrivalAt always equals DepartureAt plus the stored duration exactly.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// Validate enforces the Segment invariants:
//   - non-empty place names and a known transport mode
//   - non-negative distance and duration
//   - ArrivalAt equals DepartureAt + DurationSeconds
//   - geometry has at least two points whose first/last match the endpoints
//     within geocoding precision
func (s Segment) Validate() error {
	if s.FromPlace == "" || s.ToPlace == "" {
		return fmt.Errorf("%w: from and to places are required", ErrValidation)
	}
	if _, err := ParseTransportMode(string(s.Mode)); err != nil && s.Mode != ModeWalk {
		return err
	}
	if s.DistanceMeters < 0 {
		return fmt.Errorf("%w: distance must be non-negative", ErrValidation)
	}
	if s.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration must be non-negative", ErrValidation)
	}
	if want := s.DepartureAt.Add(SecondsToDuration(s.DurationSeconds)); !s.ArrivalAt.Equal(want) {
		return fmt.Errorf("%w: arrival must equal departure plus duration", ErrValidation)
	}
	if len(s.Geometry) < 2 {
		return fmt.Errorf("%w: geometry needs at least two points", ErrValidation)
	}
	if !coordNear(s.Geometry[0], s.FromCoord) || !coordNear(s.Geometry[len(s.Geometry)-1], s.ToCoord) {
		return fmt.Errorf("%w: geometry endpoints must match segment endpoints", ErrValidation)
	}
	return nil
}

func coordNear(a, b Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) <= geometryEndpointTolerance &&
		math.Abs(a.Lon-b.Lon) <= geometryEndpointTolerance
}
