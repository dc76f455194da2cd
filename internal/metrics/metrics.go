// Package metrics registers the service's prometheus collectors
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NearbyRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gorest_nearby_requests_total",
		Help: "Nearby services lookups by outcome",
	}, []string{"outcome"})
	NearbyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gorest_nearby_results_total",
		Help: "Normalized points of interest returned",
	})
	SkippedElementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gorest_skipped_elements_total",
		Help: "Upstream elements dropped for lacking a usable coordinate or shape",
	})
	OverpassRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gorest_overpass_requests_total",
		Help: "Total Overpass interpreter requests",
	})
	OverpassFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gorest_overpass_fail_total",
		Help: "Overpass failures by reason",
	}, []string{"reason"})
	OverpassDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gorest_overpass_duration_ms",
		Help:    "Overpass call duration in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
	})
	OverpassElementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gorest_overpass_elements_total",
		Help: "Raw elements received from Overpass",
	})
	TripsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gorest_trips_saved_total",
		Help: "Trips appended to the trip store",
	})
)

func init() {
	prometheus.MustRegister(NearbyRequestsTotal)
	prometheus.MustRegister(NearbyResultsTotal)
	prometheus.MustRegister(SkippedElementsTotal)
	prometheus.MustRegister(OverpassRequestsTotal)
	prometheus.MustRegister(OverpassFailTotal)
	prometheus.MustRegister(OverpassDurationMs)
	prometheus.MustRegister(OverpassElementsTotal)
	prometheus.MustRegister(TripsSavedTotal)
}

// Handler serves the registered collectors for scraping
func Handler() http.Handler { return promhttp.Handler() }
