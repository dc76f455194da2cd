package handlers

import (
	"net/http"
	"strconv"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/geo"
	"github.com/randytsao24/gorest/internal/models"
	"github.com/randytsao24/gorest/internal/overpass"
)

// GroupByCategory is the group query value selecting the bucketed response
const GroupByCategory = "category"

type ServicesHandler struct {
	nearby        NearbyProvider
	defaultRadius float64
}

func NewServicesHandler(nearby NearbyProvider, defaultRadiusMeters float64) *ServicesHandler {
	return &ServicesHandler{nearby: nearby, defaultRadius: defaultRadiusMeters}
}

// GetNearby returns roadside services around lat/lon, flat or grouped by category
func (h *ServicesHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	req, group, err := h.parseRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := map[string]any{
		"status":        "success",
		"center":        req.Center,
		"radius_meters": req.RadiusMeters,
	}

	if group == GroupByCategory {
		buckets, err := h.nearby.NearbyByCategory(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		count := 0
		for _, pois := range buckets {
			count += len(pois)
		}
		body["count"] = count
		body["categories"] = buckets
		writeJSON(w, http.StatusOK, body)
		return
	}

	pois, err := h.nearby.Nearby(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pois == nil {
		pois = []models.POI{}
	}
	body["count"] = len(pois)
	body["services"] = pois
	writeJSON(w, http.StatusOK, body)
}

func (h *ServicesHandler) parseRequest(r *http.Request) (overpass.SearchRequest, string, error) {
	q := r.URL.Query()

	latStr := q.Get("lat")
	lonStr := q.Get("lon")
	if lonStr == "" {
		lonStr = q.Get("lng")
	}
	if latStr == "" || lonStr == "" {
		return overpass.SearchRequest{}, "", apperr.Invalid("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return overpass.SearchRequest{}, "", apperr.Invalid("invalid lat parameter %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return overpass.SearchRequest{}, "", apperr.Invalid("invalid lon parameter %q", lonStr)
	}

	radius := h.defaultRadius
	if s := q.Get("radius"); s != "" {
		if radius, err = strconv.ParseFloat(s, 64); err != nil {
			return overpass.SearchRequest{}, "", apperr.Invalid("invalid radius parameter %q", s)
		}
	}

	group := q.Get("group")
	if group != "" && group != GroupByCategory {
		return overpass.SearchRequest{}, "", apperr.Invalid("unsupported group %q, only %q is supported", group, GroupByCategory)
	}

	return overpass.SearchRequest{
		Center:       geo.Coordinate{Lat: lat, Lon: lon},
		RadiusMeters: radius,
	}, group, nil
}
