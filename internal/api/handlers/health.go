// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startTime time.Time
	tripStore string
}

func NewHealthHandler(tripStore string) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), tripStore: tripStore}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "OK",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"version":    "1.0.0",
		"uptime":     time.Since(h.startTime).String(),
		"trip_store": h.tripStore,
	})
}
