package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
)

// RowEdit is one externally edited row, the strict intermediate shape the
// presentation grid hands back. A row that was roundtripped keeps its ID; a
// nil ID means the row is new and gets a fresh one. Delete marks the row
// for removal instead of rebuilding.
type RowEdit struct {
	ID          *uuid.UUID
	FromPlace   string
	ToPlace     string
	DepartureAt time.Time
	Mode        domain.TransportMode
	Notes       string
	Delete      bool
}

// RowWarning reports a non-blocking problem with one row of a bulk update.
// Row is the zero-based position in the incoming batch.
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkUpdateResult is the outcome of a bulk update: the rebuilt segments
// and every warning produced along the way.
type BulkUpdateResult struct {
	Segments []domain.Segment
	Warnings []RowWarning
}

// BulkUpdate rebuilds the itinerary from an externally edited batch.
//
// Every surviving row independently re-geocodes both endpoints and
// re-resolves its route — places and modes may have changed, so prior
// coordinates are never reused. Rows that fail are dropped with a warning;
// the batch continues. Sort order is the row's position in the incoming
// batch, which is how reordering is realized. The itinerary is replaced
// atomically at the end; temporal breaks introduced by the edit are
// reported as warnings, never blocked and never repaired.
func (s *ItineraryService) BulkUpdate(ctx context.Context, sessionID uuid.UUID, rows []RowEdit) (BulkUpdateResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return BulkUpdateResult{}, fmt.Errorf("service.BulkUpdate: %w", err)
	}

	var result BulkUpdateResult
	err = sess.Do(func(it *domain.Itinerary) error {
		kept := make([]RowEdit, 0, len(rows))
		positions := make([]int, 0, len(rows)) // original batch positions, for warnings
		for i, row := range rows {
			if row.Delete {
				continue
			}
			kept = append(kept, row)
			positions = append(positions, i)
		}

		// Resolve rows with bounded concurrency. Slots are indexed by batch
		// position so completion order never affects the outcome.
		segments := make([]*domain.Segment, len(kept))
		warnings := make([]*RowWarning, len(kept))

		var wg sync.WaitGroup
		sem := make(chan struct{}, bulkWorkers)
		for i := range kept {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				seg, err := s.resolveRow(ctx, kept[i])
				if err != nil {
					warnings[i] = &RowWarning{
						Row:     positions[i],
						Message: fmt.Sprintf("row %d dropped: %v", positions[i], err),
					}
					return
				}
				segments[i] = &seg
			}(i)
		}
		wg.Wait()

		rebuilt := make([]domain.Segment, 0, len(kept))
		batchPos := make([]int, 0, len(kept)) // batch position per surviving segment
		for i := range kept {
			if warnings[i] != nil {
				result.Warnings = append(result.Warnings, *warnings[i])
				continue
			}
			rebuilt = append(rebuilt, *segments[i])
			batchPos = append(batchPos, positions[i])
		}

		it.ReplaceAll(rebuilt)

		// TemporalWarnings indexes rebuilt segments, which drifts from the
		// batch numbering once a row has been dropped. Map each warning back
		// to the batch row that introduced the break so every RowWarning in
		// the response uses the same numbering.
		for _, w := range it.TemporalWarnings() {
			result.Warnings = append(result.Warnings, RowWarning{Row: batchPos[w.Position], Message: w.Message})
		}
		result.Segments = it.Segments()
		return nil
	})
	if err != nil {
		return BulkUpdateResult{}, err
	}

	s.log.Info("bulk update applied",
		"session_id", sessionID,
		"rows_in", len(rows),
		"segments_out", len(result.Segments),
		"warnings", len(result.Warnings))
	return result, nil
}

// resolveRow rebuilds one edited row into a full Segment.
func (s *ItineraryService) resolveRow(ctx context.Context, row RowEdit) (domain.Segment, error) {
	fromPlace := strings.TrimSpace(row.FromPlace)
	toPlace := strings.TrimSpace(row.ToPlace)
	if fromPlace == "" || toPlace == "" {
		return domain.Segment{}, fmt.Errorf("%w: from and to places are required", domain.ErrValidation)
	}
	if _, err := domain.ParseTransportMode(string(row.Mode)); err != nil {
		return domain.Segment{}, err
	}

	fromCoord, err := s.geocoder.ResolvePlace(ctx, fromPlace)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("%w: from %q: %v", domain.ErrGeocode, fromPlace, err)
	}
	toCoord, err := s.geocoder.ResolvePlace(ctx, toPlace)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("%w: to %q: %v", domain.ErrGeocode, toPlace, err)
	}

	route, err := s.router.ResolveRoute(ctx, fromCoord, toCoord, row.Mode)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("%w: %v", domain.ErrRoute, err)
	}

	id := uuid.New()
	if row.ID != nil {
		id = *row.ID
	}

	return domain.Segment{
		ID:              id,
		FromPlace:       fromPlace,
		ToPlace:         toPlace,
		FromCoord:       fromCoord,
		ToCoord:         toCoord,
		DepartureAt:     row.DepartureAt,
		ArrivalAt:       row.DepartureAt.Add(domain.SecondsToDuration(route.DurationSeconds)),
		Mode:            row.Mode,
		Notes:           row.Notes,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Geometry:        route.Geometry,
	}, nil
}
