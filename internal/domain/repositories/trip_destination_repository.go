package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// TripDestinationRepository manages the trip <-> destination association rows.
// Rows are also removed implicitly by the store's cascade when the parent
// trip is deleted.
type TripDestinationRepository interface {
	Create(ctx context.Context, td *entities.TripDestination) error
	ListByTrip(ctx context.Context, tripID string) ([]*entities.TripDestination, error)
	DeleteByTripAndDestination(ctx context.Context, tripID, destinationID string) error
}
