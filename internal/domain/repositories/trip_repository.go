package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// TripFilter narrows trip listings.
type TripFilter struct {
	Status entities.TripStatus
}

// TripRepository defines the interface for trip persistence.
type TripRepository interface {
	Create(ctx context.Context, trip *entities.Trip) error
	GetByID(ctx context.Context, id string) (*entities.Trip, error)
	ListByOwner(ctx context.Context, ownerID string, filter TripFilter) ([]*entities.Trip, error)
	Update(ctx context.Context, trip *entities.Trip) error
	Delete(ctx context.Context, id string) error
}
