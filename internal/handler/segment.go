package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/service"
)

// appendRequest is the body for POST /sessions/{sessionID}/segments.
// from_place is only consulted for the first segment; later appends chain
// from the previous segment's destination.
type appendRequest struct {
	FromPlace   string    `json:"from_place,omitempty"`
	ToPlace     string    `json:"to_place"`
	DepartureAt time.Time `json:"departure_at"`
	Mode        string    `json:"mode"`
	Notes       string    `json:"notes,omitempty"`
}

// listResponse is the body for GET /sessions/{sessionID}/segments.
type listResponse struct {
	Segments           []domain.Segment `json:"segments"`
	SuggestedDeparture time.Time        `json:"suggested_departure"`
}

// bulkRow is one row of a PUT /sessions/{sessionID}/segments batch.
type bulkRow struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	FromPlace   string     `json:"from_place"`
	ToPlace     string     `json:"to_place"`
	DepartureAt time.Time  `json:"departure_at"`
	Mode        string     `json:"mode"`
	Notes       string     `json:"notes,omitempty"`
	Delete      bool       `json:"delete,omitempty"`
}

type bulkRequest struct {
	Rows []bulkRow `json:"rows"`
}

type bulkResponse struct {
	Segments []domain.Segment     `json:"segments"`
	Warnings []service.RowWarning `json:"warnings"`
}

type deleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// ListSegments handles GET /sessions/{sessionID}/segments.
func (s *Server) ListSegments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	view, err := s.svc.List(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if view.Segments == nil {
		view.Segments = []domain.Segment{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Segments:           view.Segments,
		SuggestedDeparture: view.SuggestedDeparture,
	})
}

// AppendSegment handles POST /sessions/{sessionID}/segments.
func (s *Server) AppendSegment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req appendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DepartureAt.IsZero() {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "departure_at is required")
		return
	}

	seg, err := s.svc.Append(r.Context(), id, service.AppendInput{
		FromPlace:   req.FromPlace,
		ToPlace:     req.ToPlace,
		DepartureAt: req.DepartureAt,
		Mode:        domain.TransportMode(req.Mode),
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seg)
}

// BulkUpdateSegments handles PUT /sessions/{sessionID}/segments.
// The batch replaces the itinerary wholesale; rows that fail to resolve are
// dropped and reported in warnings.
func (s *Server) BulkUpdateSegments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req bulkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rows := make([]service.RowEdit, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = service.RowEdit{
			ID:          row.ID,
			FromPlace:   row.FromPlace,
			ToPlace:     row.ToPlace,
			DepartureAt: row.DepartureAt,
			Mode:        domain.TransportMode(row.Mode),
			Notes:       row.Notes,
			Delete:      row.Delete,
		}
	}

	result, err := s.svc.BulkUpdate(r.Context(), id, rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.Segments == nil {
		result.Segments = []domain.Segment{}
	}
	if result.Warnings == nil {
		result.Warnings = []service.RowWarning{}
	}
	writeJSON(w, http.StatusOK, bulkResponse{Segments: result.Segments, Warnings: result.Warnings})
}

// DeleteSegments handles DELETE /sessions/{sessionID}/segments.
func (s *Server) DeleteSegments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req deleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deleted, err := s.svc.Delete(r.Context(), id, req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
