package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/voyara/backend/internal/api/handlers"
	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler        *handlers.AuthHandler
	tripHandler        *handlers.TripHandler
	destinationHandler *handlers.DestinationHandler
	profileHandler     *handlers.ProfileHandler
	assistantHandler   *handlers.AssistantHandler

	authMiddleware  *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	tripHandler *handlers.TripHandler,
	destinationHandler *handlers.DestinationHandler,
	profileHandler *handlers.ProfileHandler,
	assistantHandler *handlers.AssistantHandler,
	authMiddleware *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:        authHandler,
		tripHandler:        tripHandler,
		destinationHandler: destinationHandler,
		profileHandler:     profileHandler,
		assistantHandler:   assistantHandler,

		authMiddleware:  authMiddleware,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoints. The bare route serves load balancers, the
	// /api one serves clients expecting JSON.
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})
	r.mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","timestamp":%q}`, time.Now().UTC().Format(time.RFC3339))
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.SignUp)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.SignIn)
	r.handle("POST /api/auth/logout", r.authHandler.SignOut)

	// Destination endpoints. The browse and detail routes are public; the
	// saved-list routes are scoped to the caller.
	r.mux.HandleFunc("GET /api/destinations", r.destinationHandler.ListDestinations)
	r.handle("GET /api/destinations/saved", r.destinationHandler.ListSavedDestinations)
	r.handle("POST /api/destinations/saved", r.destinationHandler.SaveDestination)
	r.handle("DELETE /api/destinations/saved/{id}", r.destinationHandler.UnsaveDestination)
	r.mux.HandleFunc("GET /api/destinations/{id}", r.destinationHandler.GetDestination)

	// Trip endpoints, all owner-scoped
	r.handle("GET /api/trips", r.tripHandler.ListTrips)
	r.handle("POST /api/trips", r.tripHandler.CreateTrip)
	r.handle("GET /api/trips/{id}", r.tripHandler.GetTrip)
	r.handle("PUT /api/trips/{id}", r.tripHandler.UpdateTrip)
	r.handle("DELETE /api/trips/{id}", r.tripHandler.DeleteTrip)
	r.handle("GET /api/trips/{id}/destinations", r.tripHandler.ListTripDestinations)
	r.handle("POST /api/trips/{id}/destinations", r.tripHandler.AddTripDestination)
	r.handle("DELETE /api/trips/{id}/destinations/{destinationId}", r.tripHandler.RemoveTripDestination)

	// Profile endpoints
	r.handle("GET /api/profile", r.profileHandler.GetProfile)
	r.handle("PUT /api/profile", r.profileHandler.UpdateProfile)

	// Assistant endpoints
	r.handle("POST /api/assistant/chat", r.assistantHandler.Chat)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	limiter := middleware.NewRateLimiter(100, 15*time.Minute)
	handler = limiter.Middleware(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}

// handle registers a route behind the bearer-token requirement
func (r *Router) handle(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, r.authMiddleware.Require(h))
}
