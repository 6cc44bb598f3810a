package domain

import "errors"

// ErrNotFound is returned when a requested session or segment does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty place name, unknown transport mode).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPlaceNotFound is returned by a Geocoder when a place name resolves to
// nothing, or when the geocoding provider call itself fails. It is always
// recoverable: callers surface it, they never crash on it.
var ErrPlaceNotFound = errors.New("place not found")

// ErrUnroutable is returned by a Router when the routing provider cannot find
// a path between two points for the requested profile, or when the provider
// call fails.
var ErrUnroutable = errors.New("no route between points")

// ErrGeocode marks an append rejected because an endpoint failed to geocode.
// The itinerary is left unchanged.
var ErrGeocode = errors.New("geocode error")

// ErrRoute marks an append rejected because route resolution failed.
// The itinerary is left unchanged.
var ErrRoute = errors.New("route error")

// ErrTemporalOrder marks an append rejected because the new segment departs
// before the previous segment arrives. Enforced at append time only; edits
// that break temporal order are reported as warnings, not errors.
var ErrTemporalOrder = errors.New("departure before previous arrival")
