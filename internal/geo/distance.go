// Package geo holds coordinate types and great-circle math
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Distance
const EarthRadiusKm = 6371.0

// Coordinate is a point in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite and inside the WGS84 ranges
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Distance calculates the haversine distance in kilometers between two points.
// Out of range input is not rejected; callers validate.
func Distance(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(latA)*math.Cos(latB)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Asin(math.Sqrt(h))

	return c * EarthRadiusKm
}

// RoundKm rounds to two decimals, halves away from zero
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// KmToMiles converts kilometers to miles
func KmToMiles(km float64) float64 {
	return km / 1.609344
}
