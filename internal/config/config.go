// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/randytsao24/gorest/internal/overpass"
)

// Trip store backends
const (
	TripStoreFile  = "file"
	TripStoreRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	OverpassURL         string
	OverpassTimeout     time.Duration
	RetryUnavailable    bool
	DefaultRadiusMeters float64
	ServiceCategories   []overpass.CategorySpec
	RequestTimeout      time.Duration

	TripStore      string
	TripsFile      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	errs []error
}

// Load reads configuration from environment variables with sensible defaults.
// Malformed values are collected and reported by Validate.
func Load() *Config {
	c := &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		OverpassURL:     getEnv("OVERPASS_URL", overpass.DefaultEndpoint),
		OverpassTimeout: getDurationEnv("OVERPASS_TIMEOUT_SECONDS", 25) * time.Second,
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT_SECONDS", 30) * time.Second,

		TripStore:      strings.ToLower(getEnv("TRIP_STORE", TripStoreFile)),
		TripsFile:      getEnv("TRIPS_FILE", "trips.json"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "gorest:trips"),
	}

	var err error
	if c.RetryUnavailable, err = getBoolEnv("OVERPASS_RETRY_UNAVAILABLE", true); err != nil {
		c.errs = append(c.errs, err)
	}
	if c.DefaultRadiusMeters, err = getFloatEnv("DEFAULT_RADIUS_METERS", 2500); err != nil {
		c.errs = append(c.errs, err)
	}
	if c.RedisDB, err = getIntEnv("REDIS_DB", 0); err != nil {
		c.errs = append(c.errs, err)
	}

	c.ServiceCategories = overpass.DefaultCategories
	if raw := os.Getenv("SERVICE_CATEGORIES"); raw != "" {
		cats, err := overpass.ParseCategories(raw)
		if err != nil {
			c.errs = append(c.errs, fmt.Errorf("SERVICE_CATEGORIES: %w", err))
		} else {
			c.ServiceCategories = cats
		}
	}

	return c
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.errs...)

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.OverpassURL == "" {
		errs = append(errs, errors.New("OVERPASS_URL is required"))
	}
	if c.OverpassTimeout <= 0 {
		errs = append(errs, errors.New("OVERPASS_TIMEOUT_SECONDS must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT_SECONDS must be positive"))
	}
	if c.DefaultRadiusMeters <= 0 {
		errs = append(errs, errors.New("DEFAULT_RADIUS_METERS must be positive"))
	}

	switch c.TripStore {
	case TripStoreFile:
		if c.TripsFile == "" {
			errs = append(errs, errors.New("TRIPS_FILE is required when TRIP_STORE=file"))
		}
	case TripStoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when TRIP_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("TRIP_STORE must be %q or %q, got %q", TripStoreFile, TripStoreRedis, c.TripStore))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return f, nil
}
