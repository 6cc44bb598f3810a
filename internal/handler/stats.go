package handler

import "net/http"

// Stats handles GET /sessions/{sessionID}/stats.
// An empty itinerary has no stats; the response says so explicitly instead
// of returning all-zero totals.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	stats, hasStats, err := s.svc.Stats(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !hasStats {
		writeJSON(w, http.StatusOK, map[string]bool{"empty": true})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
