package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/randytsao24/gorest/internal/pitstop"
)

type planTripRequest struct {
	VehicleType string `json:"vehicle_type"`
	EVType      string `json:"ev_type"`
}

type PitstopHandler struct{}

func NewPitstopHandler() *PitstopHandler {
	return &PitstopHandler{}
}

// PlanTrip returns the recommended distance between pitstops for a vehicle type
func (h *PitstopHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "Invalid JSON body",
			"message": err.Error(),
		})
		return
	}

	vehicle := strings.ToLower(strings.TrimSpace(req.VehicleType))
	if vehicle == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "Missing required fields",
			"missing": []string{"vehicle_type"},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":                 "success",
		"vehicle_type":           vehicle,
		"recommended_pitstop_km": pitstop.RecommendedKm(vehicle, req.EVType),
	})
}
