// Package trips stores saved trip summaries behind an append-only Store
package trips

import (
	"context"
	"errors"

	"github.com/randytsao24/gorest/internal/models"
)

// ErrInvalidTrip marks a trip payload missing required fields
var ErrInvalidTrip = errors.New("invalid trip")

// Store is an append-only trip log. Append assigns the trip's ID and either
// persists the whole trip or nothing; List returns trips in append order.
type Store interface {
	Append(ctx context.Context, trip models.Trip) (models.Trip, error)
	List(ctx context.Context) ([]models.Trip, error)
}

// Input is a decoded trip payload; nil fields were absent
type Input struct {
	Start       *string  `json:"start"`
	Destination *string  `json:"destination"`
	Vehicle     *string  `json:"vehicle"`
	Distance    *float64 `json:"distance"`
	Duration    *float64 `json:"duration"`
	Stops       *int     `json:"stops"`
}

// Missing lists the required fields absent from the payload, in field order
func (in Input) Missing() []string {
	var missing []string
	if in.Start == nil {
		missing = append(missing, "start")
	}
	if in.Destination == nil {
		missing = append(missing, "destination")
	}
	if in.Vehicle == nil {
		missing = append(missing, "vehicle")
	}
	if in.Distance == nil {
		missing = append(missing, "distance")
	}
	if in.Duration == nil {
		missing = append(missing, "duration")
	}
	if in.Stops == nil {
		missing = append(missing, "stops")
	}
	return missing
}

// Trip converts a complete payload into a trip without an ID
func (in Input) Trip() (models.Trip, error) {
	if len(in.Missing()) > 0 {
		return models.Trip{}, ErrInvalidTrip
	}
	return models.Trip{
		Start:       *in.Start,
		Destination: *in.Destination,
		Vehicle:     *in.Vehicle,
		Distance:    *in.Distance,
		Duration:    *in.Duration,
		Stops:       *in.Stops,
	}, nil
}
