package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Home is the liveness banner served at /
func (h *RootHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "GoRest Trip API is running!",
		"status":  "online",
	})
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "gorest",
		"description": "Trip planning API: roadside services near a point, saved trips and pitstop intervals",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /":                    "Service status",
			"GET /api":                 "API information",
			"GET /health":              "Health check",
			"GET /metrics":             "Prometheus metrics",
			"GET /api/services/nearby": "Services near lat/lon (radius in meters, group=category)",
			"GET /api/trips":           "List saved trips",
			"POST /api/trips":          "Save a trip",
			"POST /plan-trip":          "Recommended pitstop interval for a vehicle type",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"status":  "error",
		"error":   "Route not found",
		"message": "Check the /api endpoint for available routes",
	})
}
