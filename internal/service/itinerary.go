// Package service contains the business logic for the TripIntel API.
// Services resolve endpoints and routes through the geo providers, enforce
// itinerary rules, and orchestrate session access. No HTTP and no SQL live
// here — services depend on interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/geo"
	"github.com/tripintel/tripintel/internal/session"
)

// bulkWorkers bounds the number of rows resolved concurrently during a bulk
// update. Results are placed by batch index, so ordering stays deterministic
// regardless of completion order.
const bulkWorkers = 4

// ItineraryService implements the itinerary operations: append, bulk update,
// delete, and the read-side aggregates.
type ItineraryService struct {
	sessions *session.Store
	geocoder geo.Geocoder
	router   geo.Router
	log      *slog.Logger
}

// NewItineraryService constructs the service. router must already dispatch
// estimated modes (wrap the network router in geo.NewResolver).
func NewItineraryService(sessions *session.Store, geocoder geo.Geocoder, router geo.Router, log *slog.Logger) *ItineraryService {
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{sessions: sessions, geocoder: geocoder, router: router, log: log}
}

// CreateSession starts a new session with an empty itinerary.
func (s *ItineraryService) CreateSession() uuid.UUID {
	sess := s.sessions.Create()
	s.log.Info("session created", "session_id", sess.ID)
	return sess.ID
}

// DiscardSession ends a session and drops its itinerary.
// Returns domain.ErrNotFound for unknown sessions.
func (s *ItineraryService) DiscardSession(id uuid.UUID) error {
	if err := s.sessions.Discard(id); err != nil {
		return fmt.Errorf("service.DiscardSession: %w", err)
	}
	s.log.Info("session discarded", "session_id", id)
	return nil
}

// AppendInput carries the fields for a new segment at the end of the
// itinerary. FromPlace is only consulted when the itinerary is empty; a
// non-empty itinerary chains from the previous segment's destination.
type AppendInput struct {
	FromPlace   string
	ToPlace     string
	DepartureAt time.Time
	Mode        domain.TransportMode
	Notes       string
}

// Append resolves and appends one segment.
//
// Failure modes, all of which leave the itinerary unchanged:
//   - domain.ErrGeocode when either endpoint fails to resolve
//   - domain.ErrTemporalOrder when departure precedes the previous arrival
//   - domain.ErrRoute when route resolution fails
func (s *ItineraryService) Append(ctx context.Context, sessionID uuid.UUID, in AppendInput) (domain.Segment, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("service.Append: %w", err)
	}

	toPlace := strings.TrimSpace(in.ToPlace)
	if toPlace == "" {
		return domain.Segment{}, fmt.Errorf("%w: to place is required", domain.ErrValidation)
	}
	if _, err := domain.ParseTransportMode(string(in.Mode)); err != nil {
		return domain.Segment{}, err
	}

	var out domain.Segment
	err = sess.Do(func(it *domain.Itinerary) error {
		var fromPlace string
		var fromCoord domain.Coordinate

		last, chained := it.Last()
		if chained {
			// Auto-chain: reuse the previous destination verbatim, no
			// re-geocoding.
			fromPlace, fromCoord = last.ToPlace, last.ToCoord
		} else {
			fromPlace = strings.TrimSpace(in.FromPlace)
			if fromPlace == "" {
				return fmt.Errorf("%w: from place is required", domain.ErrValidation)
			}
			coord, err := s.geocoder.ResolvePlace(ctx, fromPlace)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrGeocode, err)
			}
			fromCoord = coord
		}

		toCoord, err := s.geocoder.ResolvePlace(ctx, toPlace)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrGeocode, err)
		}

		if chained && in.DepartureAt.Before(last.ArrivalAt) {
			return fmt.Errorf("%w: previous segment arrives at %s",
				domain.ErrTemporalOrder, last.ArrivalAt.Format("2006-01-02 15:04"))
		}

		route, err := s.router.ResolveRoute(ctx, fromCoord, toCoord, in.Mode)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRoute, err)
		}

		seg := domain.Segment{
			ID:              uuid.New(),
			FromPlace:       fromPlace,
			ToPlace:         toPlace,
			FromCoord:       fromCoord,
			ToCoord:         toCoord,
			DepartureAt:     in.DepartureAt,
			ArrivalAt:       in.DepartureAt.Add(domain.SecondsToDuration(route.DurationSeconds)),
			Mode:            in.Mode,
			Notes:           in.Notes,
			DistanceMeters:  route.DistanceMeters,
			DurationSeconds: route.DurationSeconds,
			Geometry:        route.Geometry,
			SortOrder:       it.Len(),
		}
		if err := it.Append(seg); err != nil {
			return err
		}
		out = seg
		return nil
	})
	if err != nil {
		return domain.Segment{}, err
	}

	s.log.Info("segment appended",
		"session_id", sessionID, "segment_id", out.ID,
		"mode", out.Mode, "distance_m", out.DistanceMeters)
	return out, nil
}

// Delete removes the identified segments and re-densifies sort order.
// An empty selection reports 0 deleted and changes nothing.
func (s *ItineraryService) Delete(ctx context.Context, sessionID uuid.UUID, ids []uuid.UUID) (int, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, fmt.Errorf("service.Delete: %w", err)
	}

	deleted := 0
	_ = sess.Do(func(it *domain.Itinerary) error {
		deleted = it.DeleteByID(ids)
		return nil
	})
	s.log.Info("segments deleted", "session_id", sessionID, "count", deleted)
	return deleted, nil
}

// ItineraryView is the read model for one session's itinerary.
type ItineraryView struct {
	Segments           []domain.Segment
	SuggestedDeparture time.Time
}

// List returns the current segments and the suggested next departure.
func (s *ItineraryService) List(ctx context.Context, sessionID uuid.UUID) (ItineraryView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return ItineraryView{}, fmt.Errorf("service.List: %w", err)
	}

	var view ItineraryView
	_ = sess.Do(func(it *domain.Itinerary) error {
		view.Segments = it.Segments()
		view.SuggestedDeparture = it.SuggestedDeparture(time.Now())
		return nil
	})
	return view, nil
}

// Stats computes totals and mode shares. ok is false for an empty itinerary.
func (s *ItineraryService) Stats(ctx context.Context, sessionID uuid.UUID) (domain.TripStats, bool, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.TripStats{}, false, fmt.Errorf("service.Stats: %w", err)
	}

	var stats domain.TripStats
	var ok bool
	_ = sess.Do(func(it *domain.Itinerary) error {
		stats, ok = domain.ComputeStats(it.Segments())
		return nil
	})
	return stats, ok, nil
}

// Export returns the itinerary flattened into tabular rows.
func (s *ItineraryService) Export(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRow, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("service.Export: %w", err)
	}

	var rows []domain.ExportRow
	_ = sess.Do(func(it *domain.Itinerary) error {
		rows = domain.ExportRows(it.Segments())
		return nil
	})
	return rows, nil
}
