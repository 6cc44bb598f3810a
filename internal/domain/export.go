package domain

import "time"

// ExportRow is a single segment flattened into a stable, named, tabular
// shape for CSV or spreadsheet serialization. Export code works from these
// rows alone and never needs to understand Itinerary internals.
type ExportRow struct {
	ID              string        `json:"id"`
	SortOrder       int           `json:"sort_order"`
	FromPlace       string        `json:"from_place"`
	FromLat         float64       `json:"from_lat"`
	FromLon         float64       `json:"from_lon"`
	ToPlace         string        `json:"to_place"`
	ToLat           float64       `json:"to_lat"`
	ToLon           float64       `json:"to_lon"`
	DepartureAt     time.Time     `json:"departure_at"`
	ArrivalAt       time.Time     `json:"arrival_at"`
	Mode            TransportMode `json:"mode"`
	Notes           string        `json:"notes"`
	DistanceMeters  float64       `json:"distance_m"`
	DurationSeconds float64       `json:"duration_s"`
	DistanceKm      float64       `json:"distance_km"`
	DurationHours   float64       `json:"duration_hours"`
}

// ExportRows flattens segments into one ExportRow each, in sort order.
// Derived km/hours are rounded to two decimals for display parity with the
// raw meters/seconds columns, which are exported untouched.
func ExportRows(segments []Segment) []ExportRow {
	rows := make([]ExportRow, 0, len(segments))
	for _, seg := range segments {
		rows = append(rows, ExportRow{
			ID:              seg.ID.String(),
			SortOrder:       seg.SortOrder,
			FromPlace:       seg.FromPlace,
			FromLat:         seg.FromCoord.Lat,
			FromLon:         seg.FromCoord.Lon,
			ToPlace:         seg.ToPlace,
			ToLat:           seg.ToCoord.Lat,
			ToLon:           seg.ToCoord.Lon,
			DepartureAt:     seg.DepartureAt,
			ArrivalAt:       seg.ArrivalAt,
			Mode:            seg.Mode,
			Notes:           seg.Notes,
			DistanceMeters:  seg.DistanceMeters,
			DurationSeconds: seg.DurationSeconds,
			DistanceKm:      round2(seg.DistanceMeters / 1000),
			DurationHours:   round2(seg.DurationSeconds / 3600),
		})
	}
	return rows
}
