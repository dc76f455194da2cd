package handlers

import (
	"context"

	"github.com/randytsao24/gorest/internal/models"
	"github.com/randytsao24/gorest/internal/overpass"
)

// NearbyProvider abstracts the nearby services aggregator for testability.
type NearbyProvider interface {
	Nearby(ctx context.Context, req overpass.SearchRequest) ([]models.POI, error)
	NearbyByCategory(ctx context.Context, req overpass.SearchRequest) (map[string][]models.POI, error)
}

// TripStore abstracts trip persistence; satisfied by trips.FileStore and trips.RedisStore.
type TripStore interface {
	Append(ctx context.Context, trip models.Trip) (models.Trip, error)
	List(ctx context.Context) ([]models.Trip, error)
}
