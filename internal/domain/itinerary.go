package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Itinerary is an ordered sequence of Segments forming one trip.
// It is owned by exactly one session and mutated by one caller at a time;
// serialization of operations is the owner's responsibility.
//
// Invariant: SortOrder values of the stored segments are always the
// permutation 0..n-1. Every mutation re-establishes it before returning.
type Itinerary struct {
	segments []Segment
}

// NewItinerary returns an empty itinerary.
func NewItinerary() *Itinerary {
	return &Itinerary{}
}

// Len returns the number of segments.
func (it *Itinerary) Len() int { return len(it.segments) }

// Segments returns a copy of the stored segments in sort order.
// Callers may not mutate itinerary state through the returned slice.
func (it *Itinerary) Segments() []Segment {
	out := make([]Segment, len(it.segments))
	copy(out, it.segments)
	return out
}

// Last returns the final segment, or false when the itinerary is empty.
func (it *Itinerary) Last() (Segment, bool) {
	if len(it.segments) == 0 {
		return Segment{}, false
	}
	return it.segments[len(it.segments)-1], true
}

// Append validates seg and adds it at the end with SortOrder n.
//
// A non-empty itinerary rejects segments departing before the previous
// arrival with ErrTemporalOrder. Any failure leaves the itinerary unchanged.
func (it *Itinerary) Append(seg Segment) error {
	if err := seg.Validate(); err != nil {
		return err
	}
	if last, ok := it.Last(); ok && seg.DepartureAt.Before(last.ArrivalAt) {
		return fmt.Errorf("%w: previous segment arrives at %s",
			ErrTemporalOrder, last.ArrivalAt.Format("2006-01-02 15:04"))
	}
	seg.SortOrder = len(it.segments)
	it.segments = append(it.segments, seg)
	return nil
}

// ReplaceAll swaps the entire segment list for segs, preserving the given
// order and reassigning SortOrder densely from 0. Used by bulk update, where
// the incoming batch order is authoritative.
func (it *Itinerary) ReplaceAll(segs []Segment) {
	out := make([]Segment, len(segs))
	copy(out, segs)
	for i := range out {
		out[i].SortOrder = i
	}
	it.segments = out
}

// DeleteByID removes every segment whose ID is in ids and re-densifies
// SortOrder over the remaining segments, preserving relative order.
// Returns the number of segments removed; an empty selection is a no-op.
func (it *Itinerary) DeleteByID(ids []uuid.UUID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := it.segments[:0]
	deleted := 0
	for _, seg := range it.segments {
		if _, ok := drop[seg.ID]; ok {
			deleted++
			continue
		}
		seg.SortOrder = len(kept)
		kept = append(kept, seg)
	}
	it.segments = kept
	return deleted
}

// SuggestedDeparture proposes a departure time for the next segment:
// one hour after the last arrival, or 09:00 today for an empty itinerary.
func (it *Itinerary) SuggestedDeparture(now time.Time) time.Time {
	if last, ok := it.Last(); ok {
		return last.ArrivalAt.Add(time.Hour)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 9, 0, 0, 0, now.Location())
}

// TemporalWarning reports a segment that departs before its predecessor
// arrives. Position is the offending segment's sort order.
type TemporalWarning struct {
	Position int
	Message  string
}

// TemporalWarnings scans consecutive segments and reports every position
// where a segment departs before its predecessor arrives. Edits may
// legitimately produce such chains; the condition is reported, never
// silently dropped and never auto-repaired.
func (it *Itinerary) TemporalWarnings() []TemporalWarning {
	var warnings []TemporalWarning
	for i := 1; i < len(it.segments); i++ {
		prev, cur := it.segments[i-1], it.segments[i]
		if cur.DepartureAt.Before(prev.ArrivalAt) {
			warnings = append(warnings, TemporalWarning{
				Position: i,
				Message: fmt.Sprintf(
					"segment %d departs at %s before segment %d arrives at %s",
					i, cur.DepartureAt.Format("2006-01-02 15:04"),
					i-1, prev.ArrivalAt.Format("2006-01-02 15:04")),
			})
		}
	}
	return warnings
}
