package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/geo"
)

type fakeGeocoder struct {
	calls  int
	coord  domain.Coordinate
	err    error
}

func (f *fakeGeocoder) ResolvePlace(_ context.Context, name string) (domain.Coordinate, error) {
	f.calls++
	return f.coord, f.err
}

type fakeCache struct {
	entries map[string]domain.Coordinate
	getErr  error
	putErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]domain.Coordinate{}}
}

func (f *fakeCache) Get(_ context.Context, place string) (domain.Coordinate, bool, error) {
	if f.getErr != nil {
		return domain.Coordinate{}, false, f.getErr
	}
	c, ok := f.entries[place]
	return c, ok, nil
}

func (f *fakeCache) Put(_ context.Context, place string, coord domain.Coordinate) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[place] = coord
	return nil
}

func TestNormalizePlace(t *testing.T) {
	assert.Equal(t, "new york city", geo.NormalizePlace("  New   York\tCity "))
}

func TestCachedGeocoder_MissThenHit(t *testing.T) {
	provider := &fakeGeocoder{coord: domain.Coordinate{Lat: 48.85, Lon: 2.35}}
	cache := newFakeCache()
	g := geo.NewCachedGeocoder(provider, cache, nil)

	first, err := g.ResolvePlace(context.Background(), "Paris")
	require.NoError(t, err)
	second, err := g.ResolvePlace(context.Background(), "  PARIS ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second lookup must come from the cache")
}

func TestCachedGeocoder_CacheFailureFallsThrough(t *testing.T) {
	provider := &fakeGeocoder{coord: domain.Coordinate{Lat: 1, Lon: 2}}
	cache := newFakeCache()
	cache.getErr = errors.New("db locked")
	cache.putErr = errors.New("db locked")
	g := geo.NewCachedGeocoder(provider, cache, nil)

	coord, err := g.ResolvePlace(context.Background(), "Lyon")

	require.NoError(t, err, "cache failures must not surface")
	assert.Equal(t, provider.coord, coord)
}

func TestCachedGeocoder_ProviderFailureNotCached(t *testing.T) {
	provider := &fakeGeocoder{err: domain.ErrPlaceNotFound}
	cache := newFakeCache()
	g := geo.NewCachedGeocoder(provider, cache, nil)

	_, err := g.ResolvePlace(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
	assert.Empty(t, cache.entries)
}
