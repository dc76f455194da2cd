// Package pitstop recommends how far to drive between rest stops by vehicle class.
package pitstop

import "strings"

// DefaultKm is used for vehicle classes without a table entry
const DefaultKm = 100

// ElectricBike is the EV sub-type with the shorter battery range
const ElectricBike = "electric_bike"

var intervals = map[string]float64{
	"bike":  50,
	"car":   100,
	"ev":    80,
	"bus":   150,
	"truck": 120,
	"other": DefaultKm,
}

// RecommendedKm returns the recommended distance between pitstops. Matching is
// case-insensitive; evType only matters for the "ev" class.
func RecommendedKm(vehicle, evType string) float64 {
	v := strings.ToLower(strings.TrimSpace(vehicle))
	if v == "ev" && strings.EqualFold(strings.TrimSpace(evType), ElectricBike) {
		return intervals["bike"]
	}
	if km, ok := intervals[v]; ok {
		return km
	}
	return DefaultKm
}
