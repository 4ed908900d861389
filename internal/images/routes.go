package images

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts read-only registry endpoints under /api/images.
func RegisterRoutes(r chi.Router, reg *Registry) {
	r.Route("/api/images", func(r chi.Router) {
		r.Get("/", handleList(reg))
		r.Get("/{slot}", handleGet(reg))
	})
}

type listResponse struct {
	Mode    Mode         `json:"mode"`
	BaseURL string       `json:"base_url"`
	Images  []Resolution `json:"images"`
}

func handleList(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, listResponse{
			Mode:    reg.Mode(),
			BaseURL: reg.BaseURL(),
			Images:  reg.All(),
		})
	}
}

func handleGet(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := ParseSlot(chi.URLParam(r, "slot"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, ok := reg.Lookup(slot)
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
