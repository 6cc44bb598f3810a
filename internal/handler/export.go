// Package handler — export.go implements GET /sessions/{sessionID}/export.
// Returns the itinerary as a flat table. Supports content negotiation via
// ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/tripintel/tripintel/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "sort_order",
	"from_place", "from_lat", "from_lon",
	"to_place", "to_lat", "to_lon",
	"departure_at", "arrival_at",
	"mode", "notes",
	"distance_m", "duration_s", "distance_km", "duration_hours",
}

// Export handles GET /sessions/{sessionID}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.Export(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		writeCSV(w, rows)
	default:
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "unknown export format "+strconv.Quote(format))
	}
}

// writeCSV encodes rows as CSV with a fixed header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// csvRecord flattens one ExportRow into CSV fields, column order matching
// csvHeaders. Timestamps are RFC 3339; floats keep full precision except the
// pre-rounded km/hours columns.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.ID,
		strconv.Itoa(r.SortOrder),
		r.FromPlace,
		formatFloat(r.FromLat),
		formatFloat(r.FromLon),
		r.ToPlace,
		formatFloat(r.ToLat),
		formatFloat(r.ToLon),
		r.DepartureAt.Format(time.RFC3339),
		r.ArrivalAt.Format(time.RFC3339),
		string(r.Mode),
		r.Notes,
		formatFloat(r.DistanceMeters),
		formatFloat(r.DurationSeconds),
		formatFloat(r.DistanceKm),
		formatFloat(r.DurationHours),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
