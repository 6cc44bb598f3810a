package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripintel/tripintel/internal/domain"
)

func TestParseTransportMode(t *testing.T) {
	for _, mode := range domain.Modes {
		got, err := domain.ParseTransportMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := domain.ParseTransportMode("teleport")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// walk exists internally but is not accepted from callers
	_, err = domain.ParseTransportMode("walk")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransportMode_Routable(t *testing.T) {
	assert.True(t, domain.ModeHike.Routable())
	assert.True(t, domain.ModeBike.Routable())
	assert.True(t, domain.ModeDrive.Routable())
	assert.True(t, domain.ModeWalk.Routable())
	assert.False(t, domain.ModeFly.Routable())
	assert.False(t, domain.ModeTrain.Routable())
}

func TestSegment_Validate(t *testing.T) {
	valid := segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*domain.Segment)
	}{
		{"empty from place", func(s *domain.Segment) { s.FromPlace = "" }},
		{"empty to place", func(s *domain.Segment) { s.ToPlace = "" }},
		{"unknown mode", func(s *domain.Segment) { s.Mode = "teleport" }},
		{"negative distance", func(s *domain.Segment) { s.DistanceMeters = -1 }},
		{"negative duration", func(s *domain.Segment) { s.DurationSeconds = -1 }},
		{"arrival mismatch", func(s *domain.Segment) { s.ArrivalAt = s.ArrivalAt.Add(time.Second) }},
		{"single-point geometry", func(s *domain.Segment) { s.Geometry = s.Geometry[:1] }},
		{"geometry start far from origin", func(s *domain.Segment) { s.Geometry[0].Lat += 1 }},
		{"geometry end far from destination", func(s *domain.Segment) {
			s.Geometry[len(s.Geometry)-1].Lon -= 1
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seg := segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)
			tc.mutate(&seg)
			assert.ErrorIs(t, seg.Validate(), domain.ErrValidation)
		})
	}
}

func TestSegment_Validate_AllowsSnappedEndpoints(t *testing.T) {
	// Routing providers snap endpoints to the road network; small offsets
	// must still validate.
	seg := segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)
	seg.Geometry[0].Lat += 0.001
	seg.Geometry[len(seg.Geometry)-1].Lon += 0.001

	assert.NoError(t, seg.Validate())
}

func TestCoordinate_LonLat(t *testing.T) {
	c := domain.Coordinate{Lat: 48.8566, Lon: 2.3522}
	assert.Equal(t, []float64{2.3522, 48.8566}, c.LonLat())
}
