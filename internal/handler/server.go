// Package handler implements the HTTP handlers for the TripIntel API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (session.go, segment.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/service"
)

// Servicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the geo providers or session store.
type Servicer interface {
	CreateSession() uuid.UUID
	DiscardSession(id uuid.UUID) error
	Append(ctx context.Context, sessionID uuid.UUID, in service.AppendInput) (domain.Segment, error)
	BulkUpdate(ctx context.Context, sessionID uuid.UUID, rows []service.RowEdit) (service.BulkUpdateResult, error)
	Delete(ctx context.Context, sessionID uuid.UUID, ids []uuid.UUID) (int, error)
	List(ctx context.Context, sessionID uuid.UUID) (service.ItineraryView, error)
	Stats(ctx context.Context, sessionID uuid.UUID) (domain.TripStats, bool, error)
	Export(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	svc Servicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Servicer) *Server {
	return &Server{svc: svc}
}

// Register mounts all API routes on r. Middleware is the caller's concern.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.Health)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.DiscardSession)
			r.Get("/segments", s.ListSegments)
			r.Post("/segments", s.AppendSegment)
			r.Put("/segments", s.BulkUpdateSegments)
			r.Delete("/segments", s.DeleteSegments)
			r.Get("/stats", s.Stats)
			r.Get("/export", s.Export)
		})
	})
}
