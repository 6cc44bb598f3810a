package domain

import (
	"math"
	"sort"
)

// ModeShare is one transport mode's contribution to total trip distance.
type ModeShare struct {
	Mode           TransportMode `json:"mode"`
	DistanceMeters float64       `json:"distance_m"`
	SharePercent   float64       `json:"share_percent"`
}

// TripStats aggregates totals and per-mode distance shares over an itinerary.
type TripStats struct {
	TotalDistanceKm    float64     `json:"total_distance_km"`
	TotalDurationHours float64     `json:"total_duration_hours"`
	ModeShares         []ModeShare `json:"mode_shares"`
}

// ComputeStats derives TripStats from the given segments. It is a pure
// read-only aggregation, always recomputed from current state.
//
// Mode shares are percentages of total distance, sorted descending by share
// with ties broken by mode name for determinism. An empty segment list has
// no stats: ok is false and callers report an empty result, not an error.
func ComputeStats(segments []Segment) (TripStats, bool) {
	if len(segments) == 0 {
		return TripStats{}, false
	}

	var totalMeters, totalSeconds float64
	byMode := make(map[TransportMode]float64)
	for _, seg := range segments {
		totalMeters += seg.DistanceMeters
		totalSeconds += seg.DurationSeconds
		byMode[seg.Mode] += seg.DistanceMeters
	}

	shares := make([]ModeShare, 0, len(byMode))
	for mode, meters := range byMode {
		share := 0.0
		if totalMeters > 0 {
			share = round2(100 * meters / totalMeters)
		}
		shares = append(shares, ModeShare{Mode: mode, DistanceMeters: meters, SharePercent: share})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].SharePercent != shares[j].SharePercent {
			return shares[i].SharePercent > shares[j].SharePercent
		}
		return shares[i].Mode < shares[j].Mode
	})

	return TripStats{
		TotalDistanceKm:    totalMeters / 1000,
		TotalDurationHours: totalSeconds / 3600,
		ModeShares:         shares,
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
