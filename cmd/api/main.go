package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyara/backend/internal/adapters/cache"
	"github.com/voyara/backend/internal/adapters/database"
	"github.com/voyara/backend/internal/adapters/events"
	"github.com/voyara/backend/internal/adapters/providers/assistant"
	"github.com/voyara/backend/internal/adapters/providers/identity"
	"github.com/voyara/backend/internal/adapters/search"
	"github.com/voyara/backend/internal/api/handlers"
	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/api/routes"
	"github.com/voyara/backend/internal/application/services"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	"github.com/voyara/backend/internal/infrastructure/clients/redis"
	"github.com/voyara/backend/internal/infrastructure/clients/typesense"
	"github.com/voyara/backend/internal/infrastructure/observability"
	"github.com/voyara/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("voyara-api", cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters
	tripAdapter := database.NewTripAdapter(pgClient)
	tripDestinationAdapter := database.NewTripDestinationAdapter(pgClient)
	destinationAdapter := database.NewDestinationAdapter(pgClient)
	savedDestinationAdapter := database.NewSavedDestinationAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	userProfileAdapter := database.NewUserProfileAdapter(pgClient)

	var searchRepo repositories.DestinationSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}

		searchRepo = adapter
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cache invalidation fan-out
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize providers
	identityProvider := identity.NewJWTProvider(userAdapter, cacheProvider, &cfg.Auth)
	assistantProvider := assistant.NewProvider(&cfg.Assistant)
	log.Printf("Assistant provider: %s", cfg.Assistant.Provider)

	// Initialize services
	tripService := services.NewTripService(tripAdapter, tripDestinationAdapter, destinationAdapter, eventBus)
	destinationService := services.NewDestinationService(destinationAdapter, searchRepo, savedDestinationAdapter)
	profileService := services.NewProfileService(userProfileAdapter)
	assistantService := services.NewAssistantService(assistantProvider, tripAdapter)

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityProvider)
	tripHandler := handlers.NewTripHandler(tripService)
	destinationHandler := handlers.NewDestinationHandler(destinationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(identityProvider)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		authHandler,
		tripHandler,
		destinationHandler,
		profileHandler,
		assistantHandler,
		authMiddleware,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	// Stop cache invalidation service
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
