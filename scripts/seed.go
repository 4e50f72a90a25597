package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/voyara/backend/internal/adapters/cache"
	"github.com/voyara/backend/internal/adapters/database"
	"github.com/voyara/backend/internal/adapters/events"
	"github.com/voyara/backend/internal/adapters/search"
	"github.com/voyara/backend/internal/application/services"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	"github.com/voyara/backend/internal/infrastructure/clients/redis"
	"github.com/voyara/backend/internal/infrastructure/clients/typesense"
	"github.com/voyara/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	metadata JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_profiles (
	id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	full_name TEXT,
	avatar_url TEXT,
	bio TEXT,
	language TEXT NOT NULL DEFAULT 'en',
	preferences JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS destinations (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT NOT NULL,
	description TEXT,
	image TEXT,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	rating DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS trips (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	description TEXT,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	status TEXT NOT NULL DEFAULT 'planning'
		CHECK (status IN ('planning', 'ongoing', 'completed', 'cancelled')),
	cover_photo TEXT,
	budget DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (end_date >= start_date)
);
CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id);

CREATE TABLE IF NOT EXISTS trip_destinations (
	id UUID PRIMARY KEY,
	trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	destination_id UUID NOT NULL REFERENCES destinations(id) ON DELETE CASCADE,
	visit_order INTEGER,
	notes TEXT,
	arrival_date DATE,
	departure_date DATE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_trip_destinations_trip_id ON trip_destinations(trip_id);

CREATE TABLE IF NOT EXISTS saved_destinations (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	destination_id UUID NOT NULL REFERENCES destinations(id) ON DELETE CASCADE,
	notes TEXT,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, destination_id)
);
CREATE INDEX IF NOT EXISTS idx_saved_destinations_user_id ON saved_destinations(user_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				saved_destinations,
				trip_destinations,
				trips,
				destinations,
				user_profiles,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Printf("Warning: failed to init search schema: %v", err)
		}
	} else {
		log.Printf("Warning: Typesense unavailable, skipping index: %v", err)
	}

	destinationRepo := database.NewDestinationAdapter(pgClient)

	now := time.Now().UTC()
	rating := func(v float64) *float64 { return &v }
	coord := func(v float64) *float64 { return &v }

	destinations := []entities.Destination{
		{
			ID: uuid.NewString(), Name: "Paris", Country: "France",
			Description: "The City of Light awaits with iconic landmarks and rich culture",
			Image:       "/placeholder.svg",
			Latitude:    coord(48.8566), Longitude: coord(2.3522),
			Rating: rating(4.8), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Tokyo", Country: "Japan",
			Description: "Experience the perfect blend of tradition and modernity",
			Image:       "/placeholder.svg",
			Latitude:    coord(35.6762), Longitude: coord(139.6503),
			Rating: rating(4.9), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "New York", Country: "USA",
			Description: "The city that never sleeps offers endless possibilities",
			Image:       "/placeholder.svg",
			Latitude:    coord(40.7128), Longitude: coord(-74.0060),
			Rating: rating(4.7), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Kyoto", Country: "Japan",
			Description: "Ancient temples, gardens and geisha districts",
			Image:       "/placeholder.svg",
			Latitude:    coord(35.0116), Longitude: coord(135.7681),
			Rating: rating(4.8), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Rome", Country: "Italy",
			Description: "Walk through millennia of history in the Eternal City",
			Image:       "/placeholder.svg",
			Latitude:    coord(41.9028), Longitude: coord(12.4964),
			Rating: rating(4.6), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Jaipur", Country: "India",
			Description: "The Pink City of palaces, forts and bazaars",
			Image:       "/placeholder.svg",
			Latitude:    coord(26.9124), Longitude: coord(75.7873),
			Rating: rating(4.5), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Barcelona", Country: "Spain",
			Description: "Gaudi architecture, beaches and late-night tapas",
			Image:       "/placeholder.svg",
			Latitude:    coord(41.3874), Longitude: coord(2.1686),
			Rating: rating(4.7), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Cape Town", Country: "South Africa",
			Description: "Table Mountain views, winelands and wild coastline",
			Image:       "/placeholder.svg",
			Latitude:    coord(-33.9249), Longitude: coord(18.4241),
			Rating: rating(4.6), CreatedAt: now, UpdatedAt: now,
		},
	}

	for i := range destinations {
		d := &destinations[i]
		if err := destinationRepo.Upsert(ctx, d); err != nil {
			log.Printf("Failed to seed destination %s: %v", d.Name, err)
			continue
		}
		log.Printf("Seeded %s", d.Name)

		if searchRepo != nil {
			if err := searchRepo.Index(ctx, d); err != nil {
				log.Printf("Failed to index destination %s: %v", d.Name, err)
			}
		}
	}

	// Drop any stale cached destination responses after the bulk write
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, skipping cache invalidation: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider := cache.NewRedisAdapter(redisClient)
		eventBus := events.NewRedisEventBus(redisClient)
		defer eventBus.Close()

		invalidation := services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.InvalidateDestinationCaches(ctx); err != nil {
			log.Printf("Warning: %v", err)
		} else {
			log.Println("Destination caches invalidated")
		}
	}

	log.Println("Seeding complete.")
}
