// Package nearby aggregates roadside services around a point: it queries
// Overpass, normalizes the elements and orders them by distance.
package nearby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/geo"
	"github.com/randytsao24/gorest/internal/logger"
	"github.com/randytsao24/gorest/internal/metrics"
	"github.com/randytsao24/gorest/internal/models"
	"github.com/randytsao24/gorest/internal/overpass"
)

// OtherBucket collects results whose category is not one of the configured ones
const OtherBucket = "other"

// Fetcher executes a built query against the points of interest provider
type Fetcher interface {
	Fetch(ctx context.Context, q overpass.Query) ([]overpass.Element, error)
}

// Options configures a Service
type Options struct {
	// Categories to search for; DefaultCategories when empty
	Categories []overpass.CategorySpec
	// RetryUnavailable retries a transport failure once
	RetryUnavailable bool
	Logger           *slog.Logger
}

// Service is safe for concurrent use; it holds only read-only configuration
type Service struct {
	fetcher    Fetcher
	categories []overpass.CategorySpec
	buckets    []string
	retry      bool
	logger     *slog.Logger
	normalize  func(overpass.Element, geo.Coordinate) (models.POI, bool)
}

// NewService creates a nearby services aggregator
func NewService(fetcher Fetcher, opts Options) *Service {
	categories := opts.Categories
	if len(categories) == 0 {
		categories = overpass.DefaultCategories
	}
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Service{
		fetcher:    fetcher,
		categories: append([]overpass.CategorySpec(nil), categories...),
		buckets:    bucketNames(categories),
		retry:      opts.RetryUnavailable,
		logger:     l,
		normalize:  Normalize,
	}
}

// Categories returns the configured category specs
func (s *Service) Categories() []overpass.CategorySpec {
	return append([]overpass.CategorySpec(nil), s.categories...)
}

// Buckets returns the fixed bucket names of categorized results, OtherBucket last
func (s *Service) Buckets() []string {
	return append([]string(nil), s.buckets...)
}

// Validate checks the radius and center of a request
func Validate(req overpass.SearchRequest) error {
	if math.IsNaN(req.RadiusMeters) || math.IsInf(req.RadiusMeters, 0) || req.RadiusMeters <= 0 {
		return apperr.Invalid("radius must be a positive number of meters, got %v", req.RadiusMeters)
	}
	if !req.Center.Valid() {
		return apperr.Invalid("coordinate (%v, %v) out of range", req.Center.Lat, req.Center.Lon)
	}
	return nil
}

// Nearby returns the services around req.Center sorted ascending by distance.
// Equidistant results keep the provider's order.
func (s *Service) Nearby(ctx context.Context, req overpass.SearchRequest) ([]models.POI, error) {
	if err := Validate(req); err != nil {
		metrics.NearbyRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	query, err := overpass.BuildQuery(req, s.categories)
	if err != nil {
		metrics.NearbyRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	elements, err := s.fetch(ctx, query)
	if err != nil {
		metrics.NearbyRequestsTotal.WithLabelValues("upstream_failure").Inc()
		return nil, err
	}

	pois, err := s.normalizeAll(elements, req.Center)
	if err != nil {
		metrics.NearbyRequestsTotal.WithLabelValues("internal").Inc()
		return nil, err
	}
	SortByDistance(pois)

	metrics.NearbyRequestsTotal.WithLabelValues("ok").Inc()
	metrics.NearbyResultsTotal.Add(float64(len(pois)))
	s.logger.Debug("nearby_done", "lat", req.Center.Lat, "lon", req.Center.Lon,
		"radius_meters", req.RadiusMeters, "elements", len(elements), "results", len(pois))

	return pois, nil
}

// NearbyByCategory is Nearby partitioned into the service's buckets. Every
// bucket is present in the result, empty or not.
func (s *Service) NearbyByCategory(ctx context.Context, req overpass.SearchRequest) (map[string][]models.POI, error) {
	pois, err := s.Nearby(ctx, req)
	if err != nil {
		return nil, err
	}
	return Categorize(pois, s.buckets), nil
}

func (s *Service) fetch(ctx context.Context, query overpass.Query) ([]overpass.Element, error) {
	elements, err := s.fetcher.Fetch(ctx, query)
	if err == nil || !s.retry || !errors.Is(err, apperr.ErrUpstreamUnavailable) || ctx.Err() != nil {
		return elements, err
	}
	s.logger.Warn("overpass_retry", logger.Err(err))
	return s.fetcher.Fetch(ctx, query)
}

func (s *Service) normalizeAll(elements []overpass.Element, center geo.Coordinate) (pois []models.POI, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("normalize_panic", "panic", r)
			pois, err = nil, fmt.Errorf("%w: normalizing elements: %v", apperr.ErrInternal, r)
		}
	}()

	pois = make([]models.POI, 0, len(elements))
	for _, el := range elements {
		poi, ok := s.normalize(el, center)
		if !ok {
			metrics.SkippedElementsTotal.Inc()
			s.logger.Debug("element_skipped", "type", el.Type, "id", el.ID, "reason", "no usable coordinate")
			continue
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// SortByDistance orders pois ascending by DistanceKm, keeping the relative
// order of equal distances
func SortByDistance(pois []models.POI) {
	sort.SliceStable(pois, func(i, j int) bool {
		return pois[i].DistanceKm < pois[j].DistanceKm
	})
}

// Categorize partitions pois into buckets. A POI whose category is not a
// bucket lands in OtherBucket when that is one of the buckets and is dropped
// otherwise. Each bucket is sorted by distance.
func Categorize(pois []models.POI, buckets []string) map[string][]models.POI {
	out := make(map[string][]models.POI, len(buckets))
	for _, b := range buckets {
		out[b] = []models.POI{}
	}
	for _, poi := range pois {
		bucket := poi.Category
		if _, ok := out[bucket]; !ok {
			bucket = OtherBucket
			if _, ok := out[bucket]; !ok {
				continue
			}
		}
		out[bucket] = append(out[bucket], poi)
	}
	for _, list := range out {
		SortByDistance(list)
	}
	return out
}

func bucketNames(categories []overpass.CategorySpec) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range categories {
		if seen[c.Value] || c.Value == OtherBucket {
			continue
		}
		seen[c.Value] = true
		names = append(names, c.Value)
	}
	return append(names, OtherBucket)
}
