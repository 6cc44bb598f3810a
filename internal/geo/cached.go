package geo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tripintel/tripintel/internal/domain"
)

// GeocodeCache is the storage contract for cached place lookups.
// Keys are normalized place names; see NormalizePlace.
type GeocodeCache interface {
	Get(ctx context.Context, place string) (domain.Coordinate, bool, error)
	Put(ctx context.Context, place string, coord domain.Coordinate) error
}

// NormalizePlace produces a stable cache key: whitespace collapsed to single
// spaces, lowercased.
func NormalizePlace(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CachedGeocoder decorates a Geocoder with a persistent cache.
// Cache failures are logged and degrade to a provider call; they are never
// surfaced to the caller.
type CachedGeocoder struct {
	next  Geocoder
	cache GeocodeCache
	log   *slog.Logger
}

// NewCachedGeocoder wraps next with the given cache.
func NewCachedGeocoder(next Geocoder, cache GeocodeCache, log *slog.Logger) *CachedGeocoder {
	if log == nil {
		log = slog.Default()
	}
	return &CachedGeocoder{next: next, cache: cache, log: log}
}

// ResolvePlace implements Geocoder.
func (g *CachedGeocoder) ResolvePlace(ctx context.Context, name string) (domain.Coordinate, error) {
	key := NormalizePlace(name)

	coord, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Warn("geocode cache read failed", "place", key, "error", err)
	} else if ok {
		return coord, nil
	}

	coord, err = g.next.ResolvePlace(ctx, name)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := g.cache.Put(ctx, key, coord); err != nil {
		g.log.Warn("geocode cache write failed", "place", key, "error", err)
	}
	return coord, nil
}
