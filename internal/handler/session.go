package handler

import "net/http"

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.svc.CreateSession()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id.String()})
}

// DiscardSession handles DELETE /sessions/{sessionID}.
func (s *Server) DiscardSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DiscardSession(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
