package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// DestinationFilter narrows destination listings.
type DestinationFilter struct {
	Country string
	Search  string
	Limit   int
	Offset  int
}

// DestinationRepository defines the interface for destination reads and the
// out-of-band seed writes.
type DestinationRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Destination, error)
	List(ctx context.Context, filter DestinationFilter) ([]*entities.Destination, error)
	Upsert(ctx context.Context, destination *entities.Destination) error
}

// DestinationSearchRepository is the full-text search index over destinations.
type DestinationSearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, destination *entities.Destination) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query, country string, limit int) ([]*entities.Destination, error)
}
