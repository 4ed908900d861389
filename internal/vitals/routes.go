package vitals

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxReportBytes bounds a posted report body.
const maxReportBytes = 64 << 10

// RegisterRoutes mounts the vitals beacon endpoint.
func RegisterRoutes(r chi.Router, m *Monitor) {
	r.Post("/api/vitals", handleRecord(m))
}

func handleRecord(m *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report Report
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBytes)).Decode(&report); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if err := report.Validate(); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		m.Record(report)
		w.WriteHeader(http.StatusNoContent)
	}
}
