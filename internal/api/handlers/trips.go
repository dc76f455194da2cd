package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/metrics"
	"github.com/randytsao24/gorest/internal/trips"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

type TripsHandler struct {
	store TripStore
}

func NewTripsHandler(store TripStore) *TripsHandler {
	return &TripsHandler{store: store}
}

// SaveTrip validates and appends a trip summary
func (h *TripsHandler) SaveTrip(w http.ResponseWriter, r *http.Request) {
	var in trips.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "Invalid JSON body",
			"message": err.Error(),
		})
		return
	}

	if missing := in.Missing(); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"error":   "Missing required fields",
			"missing": missing,
		})
		return
	}

	trip, err := in.Trip()
	if err != nil {
		writeError(w, r, apperr.Invalid("%s", err))
		return
	}

	saved, err := h.store.Append(r.Context(), trip)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", apperr.ErrInternal, err))
		return
	}
	metrics.TripsSavedTotal.Inc()

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Trip saved successfully",
		"trip":    saved,
	})
}

// ListTrips returns every saved trip in save order
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", apperr.ErrInternal, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"count":  len(list),
		"trips":  list,
	})
}
