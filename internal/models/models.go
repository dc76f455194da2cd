// Package models defines shared data types
package models

// POI is a normalized point of interest with its distance from the query center
type POI struct {
	ID         int64   `json:"id,omitempty"`
	Type       string  `json:"type,omitempty"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

// Trip is a saved trip summary
type Trip struct {
	ID          int64   `json:"id"`
	Start       string  `json:"start"`
	Destination string  `json:"destination"`
	Vehicle     string  `json:"vehicle"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Stops       int     `json:"stops"`
}
