package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
)

// CacheInvalidationService drops stale response-cache entries when the
// underlying records change
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for entity changes and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelEntityChanges)
	if err != nil {
		return fmt.Errorf("failed to subscribe to entity changes: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Println("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ChangeEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent drops response-cache entries touching the changed entity.
// Per-user data such as trips is never response-cached, so only shared
// surfaces need invalidation here.
func (s *CacheInvalidationService) handleEvent(event *entities.ChangeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if event.Entity != "destination" {
		return
	}

	pattern := "http:cache:*destinations*"
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		log.Printf("Warning: failed to invalidate destination caches for event %s: %v", event.ID, err)
		return
	}
	log.Printf("Invalidated destination caches after %s of %s", event.Action, event.EntityID)
}

// InvalidateDestinationCaches drops every cached destination response.
// Used by the seed and indexing processes after bulk writes.
func (s *CacheInvalidationService) InvalidateDestinationCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, "http:cache:*destinations*"); err != nil {
		return fmt.Errorf("failed to invalidate destination caches: %w", err)
	}
	return nil
}
