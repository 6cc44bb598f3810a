package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
)

// errorResponse is the uniform error body: {"error":{"code":...,"message":...}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error to an HTTP status and stable code.
// Unrecognized errors become a 500 with a generic body; the detail stays in
// the server log, not the response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", cleanMessage(err))
	case errors.Is(err, domain.ErrGeocode):
		writeError(w, http.StatusUnprocessableEntity, "geocode_error", cleanMessage(err))
	case errors.Is(err, domain.ErrRoute):
		writeError(w, http.StatusUnprocessableEntity, "route_error", cleanMessage(err))
	case errors.Is(err, domain.ErrTemporalOrder):
		writeError(w, http.StatusUnprocessableEntity, "temporal_order_error", cleanMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", cleanMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// cleanMessage strips the service call prefix from a wrapped error so the
// response reads "not found: session <id>" rather than
// "service.List: not found: session <id>".
func cleanMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i > 0 && strings.HasPrefix(msg, "service.") {
		msg = msg[i+2:]
	}
	return msg
}

// pathSessionID parses the {sessionID} route parameter. On failure it writes
// a 404 and reports false — a malformed id can never name a live session.
func pathSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return false
	}
	return true
}
