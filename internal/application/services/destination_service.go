package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// DestinationService handles destination browsing, full-text search and
// per-user saves
type DestinationService struct {
	destinations repositories.DestinationRepository
	searchRepo   repositories.DestinationSearchRepository
	saved        repositories.SavedDestinationRepository
}

// NewDestinationService creates a new destination service
func NewDestinationService(
	destinations repositories.DestinationRepository,
	searchRepo repositories.DestinationSearchRepository,
	saved repositories.SavedDestinationRepository,
) *DestinationService {
	return &DestinationService{
		destinations: destinations,
		searchRepo:   searchRepo,
		saved:        saved,
	}
}

// List retrieves destinations. Free-text queries go through the search
// engine when one is configured, falling back to the record store when it
// is absent or unavailable.
func (s *DestinationService) List(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
	if filter.Search != "" && s.searchRepo != nil {
		results, err := s.searchRepo.Search(ctx, filter.Search, filter.Country, filter.Limit)
		if err == nil {
			return results, nil
		}
		log.Printf("Warning: destination search failed, falling back to database: %v", err)
	}
	return s.destinations.List(ctx, filter)
}

// Get retrieves a destination by ID
func (s *DestinationService) Get(ctx context.Context, id string) (*entities.Destination, error) {
	return s.destinations.GetByID(ctx, id)
}

// Save bookmarks a destination for a user. Saving the same destination
// twice is a conflict; the store's unique constraint backs up this check
// under concurrent saves.
func (s *DestinationService) Save(ctx context.Context, userID, destinationID, notes string) (*entities.SavedDestination, error) {
	if destinationID == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "destination_id is required")
	}

	destination, err := s.destinations.GetByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	exists, err := s.saved.Exists(ctx, userID, destinationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(apperrors.CodeAlreadySaved, "destination already saved")
	}

	saved := &entities.SavedDestination{
		ID:            uuid.NewString(),
		UserID:        userID,
		DestinationID: destinationID,
		Notes:         notes,
		SavedAt:       time.Now().UTC(),
		Destination:   destination,
	}

	if err := s.saved.Create(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// ListSaved retrieves a user's saved destinations, most recent first
func (s *DestinationService) ListSaved(ctx context.Context, userID string) ([]*entities.SavedDestination, error) {
	return s.saved.ListByUser(ctx, userID)
}

// Unsave removes a user's bookmark of a destination. Removing a bookmark
// that does not exist succeeds; delete is idempotent.
func (s *DestinationService) Unsave(ctx context.Context, userID, destinationID string) error {
	return s.saved.DeleteByUserAndDestination(ctx, userID, destinationID)
}
