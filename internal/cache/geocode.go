// Package cache provides the SQL-backed geocode cache.
// The cache is a provider-side optimization: it remembers place-name lookups
// so repeated appends and bulk updates do not re-query the geocoding service.
// It runs on SQLite or Postgres through database/sql; the SQL is written to
// work on both.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/geo"
)

// SQLGeocodeCache stores normalized place names with their coordinates.
type SQLGeocodeCache struct {
	db *sql.DB
}

// NewSQLGeocodeCache constructs a cache over an already-migrated database.
func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{db: db}
}

var _ geo.GeocodeCache = (*SQLGeocodeCache)(nil)

// Get returns the cached coordinate for place, with ok=false on a miss.
func (c *SQLGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinate, bool, error) {
	const q = `SELECT lat, lon FROM geocode_cache WHERE place = $1`

	var coord domain.Coordinate
	err := c.db.QueryRowContext(ctx, q, place).Scan(&coord.Lat, &coord.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("geocode cache get %q: %w", place, err)
	}
	return coord, true, nil
}

// Put stores or refreshes the coordinate for place.
func (c *SQLGeocodeCache) Put(ctx context.Context, place string, coord domain.Coordinate) error {
	if place == "" {
		return fmt.Errorf("geocode cache put: empty place key")
	}

	const q = `
		INSERT INTO geocode_cache (place, lat, lon)
		VALUES ($1, $2, $3)
		ON CONFLICT (place) DO UPDATE
		SET lat = EXCLUDED.lat,
		    lon = EXCLUDED.lon`

	if _, err := c.db.ExecContext(ctx, q, place, coord.Lat, coord.Lon); err != nil {
		return fmt.Errorf("geocode cache put %q: %w", place, err)
	}
	return nil
}
