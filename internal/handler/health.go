package handler

import "net/http"

// Health handles GET /healthz. It reports liveness only; the geo providers
// are not probed.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
