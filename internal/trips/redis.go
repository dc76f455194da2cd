package trips

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/randytsao24/gorest/internal/models"
)

var _ Store = (*RedisStore)(nil)

// DefaultKeyPrefix namespaces the trip keys in Redis
const DefaultKeyPrefix = "gorest:trips"

// RedisStore keeps trips in a Redis list; IDs come from an INCR counter so
// concurrent appenders across processes never share an ID
type RedisStore struct {
	rc     *redis.Client
	seqKey string
	logKey string
}

// NewRedisStore creates a store using keys under prefix
func NewRedisStore(rc *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{
		rc:     rc,
		seqKey: prefix + ":seq",
		logKey: prefix + ":log",
	}
}

// Append assigns the next ID and pushes the trip onto the list
func (s *RedisStore) Append(ctx context.Context, trip models.Trip) (models.Trip, error) {
	id, err := s.rc.Incr(ctx, s.seqKey).Result()
	if err != nil {
		return models.Trip{}, fmt.Errorf("allocating trip id: %w", err)
	}
	trip.ID = id

	data, err := json.Marshal(trip)
	if err != nil {
		return models.Trip{}, fmt.Errorf("encoding trip: %w", err)
	}
	if err := s.rc.RPush(ctx, s.logKey, data).Err(); err != nil {
		return models.Trip{}, fmt.Errorf("saving trip: %w", err)
	}
	return trip, nil
}

// List returns all trips in append order
func (s *RedisStore) List(ctx context.Context) ([]models.Trip, error) {
	raw, err := s.rc.LRange(ctx, s.logKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("loading trips: %w", err)
	}
	out := make([]models.Trip, 0, len(raw))
	for _, r := range raw {
		var trip models.Trip
		if err := json.Unmarshal([]byte(r), &trip); err != nil {
			return nil, fmt.Errorf("decoding trip: %w", err)
		}
		out = append(out, trip)
	}
	return out, nil
}
