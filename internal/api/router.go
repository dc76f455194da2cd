package api

import (
	"net/http"

	"github.com/randytsao24/gorest/internal/api/handlers"
	"github.com/randytsao24/gorest/internal/config"
	"github.com/randytsao24/gorest/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	nearbySvc handlers.NearbyProvider,
	tripStore handlers.TripStore,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.TripStore)
	rootHandler := handlers.NewRootHandler()
	servicesHandler := handlers.NewServicesHandler(nearbySvc, cfg.DefaultRadiusMeters)
	tripsHandler := handlers.NewTripsHandler(tripStore)
	pitstopHandler := handlers.NewPitstopHandler()

	// Core routes
	mux.HandleFunc("GET /", rootHandler.Home)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Nearby services
	mux.HandleFunc("GET /api/services/nearby", servicesHandler.GetNearby)

	// Trips
	mux.HandleFunc("GET /api/trips", tripsHandler.ListTrips)
	mux.HandleFunc("POST /api/trips", tripsHandler.SaveTrip)
	mux.HandleFunc("POST /plan-trip", pitstopHandler.PlanTrip)

	// Apply middleware stack
	handler := Chain(mux,
		RequestID,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.RequestTimeout),
	)

	return handler
}
