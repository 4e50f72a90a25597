package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// SavedDestinationRepository manages per-user destination bookmarks.
type SavedDestinationRepository interface {
	Create(ctx context.Context, saved *entities.SavedDestination) error
	Exists(ctx context.Context, userID, destinationID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.SavedDestination, error)
	DeleteByUserAndDestination(ctx context.Context, userID, destinationID string) error
}
