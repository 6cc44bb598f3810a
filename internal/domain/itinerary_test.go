package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripintel/tripintel/internal/domain"
)

// segment returns a valid drive segment departing at the given time.
func segment(departure time.Time, durationSeconds float64) domain.Segment {
	from := domain.Coordinate{Lat: 48.8566, Lon: 2.3522}
	to := domain.Coordinate{Lat: 45.7640, Lon: 4.8357}
	return domain.Segment{
		ID:              uuid.New(),
		FromPlace:       "Paris",
		ToPlace:         "Lyon",
		FromCoord:       from,
		ToCoord:         to,
		DepartureAt:     departure,
		ArrivalAt:       departure.Add(domain.SecondsToDuration(durationSeconds)),
		Mode:            domain.ModeDrive,
		DistanceMeters:  465000,
		DurationSeconds: durationSeconds,
		Geometry:        []domain.Coordinate{from, to},
	}
}

func TestItinerary_Append_AssignsSortOrder(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, it.Append(segment(dep, 3600)))
	require.NoError(t, it.Append(segment(dep.Add(2*time.Hour), 3600)))
	require.NoError(t, it.Append(segment(dep.Add(4*time.Hour), 3600)))

	segs := it.Segments()
	require.Len(t, segs, 3)
	for i, seg := range segs {
		assert.Equal(t, i, seg.SortOrder)
	}
}

func TestItinerary_Append_RejectsEarlyDeparture(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, it.Append(segment(dep, 16200))) // arrives 13:30

	early := segment(dep.Add(time.Hour), 3600) // departs 10:00 < 13:30
	err := it.Append(early)

	assert.ErrorIs(t, err, domain.ErrTemporalOrder)
	assert.Equal(t, 1, it.Len(), "failed append must leave the itinerary unchanged")
}

func TestItinerary_Append_DepartureEqualToArrivalOK(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, it.Append(segment(dep, 3600)))

	// Departing exactly at the previous arrival satisfies >=.
	require.NoError(t, it.Append(segment(dep.Add(time.Hour), 3600)))
}

func TestItinerary_Append_InvalidSegmentRejected(t *testing.T) {
	it := domain.NewItinerary()
	bad := segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)
	bad.ArrivalAt = bad.ArrivalAt.Add(time.Minute) // breaks arrival invariant

	err := it.Append(bad)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, it.Len())
}

func TestItinerary_DeleteByID_RedensifiesSortOrder(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	segs := make([]domain.Segment, 4)
	for i := range segs {
		segs[i] = segment(dep.Add(time.Duration(i)*2*time.Hour), 3600)
		require.NoError(t, it.Append(segs[i]))
	}

	deleted := it.DeleteByID([]uuid.UUID{segs[1].ID, segs[3].ID})

	assert.Equal(t, 2, deleted)
	remaining := it.Segments()
	require.Len(t, remaining, 2)
	assert.Equal(t, segs[0].ID, remaining[0].ID)
	assert.Equal(t, segs[2].ID, remaining[1].ID)
	assert.Equal(t, 0, remaining[0].SortOrder)
	assert.Equal(t, 1, remaining[1].SortOrder)
}

func TestItinerary_DeleteByID_EmptySelectionNoOp(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, it.Append(segment(dep, 3600)))
	before := it.Segments()

	deleted := it.DeleteByID(nil)

	assert.Equal(t, 0, deleted)
	assert.Equal(t, before, it.Segments())
}

func TestItinerary_DeleteByID_UnknownIDIgnored(t *testing.T) {
	it := domain.NewItinerary()
	require.NoError(t, it.Append(segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)))

	deleted := it.DeleteByID([]uuid.UUID{uuid.New()})

	assert.Equal(t, 0, deleted)
	assert.Equal(t, 1, it.Len())
}

func TestItinerary_ReplaceAll_ReassignsSortOrder(t *testing.T) {
	it := domain.NewItinerary()
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := segment(dep, 3600)
	b := segment(dep.Add(2*time.Hour), 3600)
	a.SortOrder, b.SortOrder = 7, 3 // stale values must be overwritten

	it.ReplaceAll([]domain.Segment{b, a})

	segs := it.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, b.ID, segs[0].ID)
	assert.Equal(t, 0, segs[0].SortOrder)
	assert.Equal(t, 1, segs[1].SortOrder)
}

func TestItinerary_Segments_ReturnsCopy(t *testing.T) {
	it := domain.NewItinerary()
	require.NoError(t, it.Append(segment(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3600)))

	segs := it.Segments()
	segs[0].Notes = "mutated"

	assert.Empty(t, it.Segments()[0].Notes)
}

func TestItinerary_SuggestedDeparture(t *testing.T) {
	now := time.Date(2024, 3, 15, 17, 45, 0, 0, time.UTC)

	it := domain.NewItinerary()
	assert.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), it.SuggestedDeparture(now))

	dep := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, it.Append(segment(dep, 3600)))
	assert.Equal(t, dep.Add(time.Hour+time.Hour), it.SuggestedDeparture(now))
}

func TestItinerary_TemporalWarnings(t *testing.T) {
	dep := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := segment(dep, 16200)               // arrives 13:30
	b := segment(dep.Add(time.Hour), 3600) // departs 10:00 — before a arrives

	it := domain.NewItinerary()
	it.ReplaceAll([]domain.Segment{a, b})

	warnings := it.TemporalWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Position)
	assert.Contains(t, warnings[0].Message, "segment 1")
}
