package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/voyara/backend/internal/adapters/database"
	"github.com/voyara/backend/internal/adapters/search"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	"github.com/voyara/backend/internal/infrastructure/clients/typesense"
	"github.com/voyara/backend/pkg/config"
)

const destinationsCollection = "destinations"

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	destinationRepo := database.NewDestinationAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting destinations collection before reindex")
		if _, err := tsClient.Client().Collection(destinationsCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	destinations, err := destinationRepo.List(ctx, repositories.DestinationFilter{Limit: 1000})
	if err != nil {
		return err
	}

	log.Printf("Indexing %d destinations...", len(destinations))

	for _, destination := range destinations {
		if destination == nil {
			continue
		}

		if err := adapter.Index(ctx, destination); err != nil {
			log.Printf("Failed to index destination %s: %v", destination.ID, err)
		} else {
			log.Printf("Indexed %s", destination.Name)
		}
	}

	log.Println("Indexing complete.")
	return nil
}
