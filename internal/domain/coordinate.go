// Package domain contains the core data types for the TripIntel itinerary engine.
// This package has no knowledge of HTTP, providers, or storage and is imported
// by every other internal package (geo, service, handler).
package domain

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LonLat returns the coordinate as [lon, lat], the ordering used by GeoJSON
// payloads and the routing provider API.
func (c Coordinate) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
