package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// UserRepository persists identity-provider accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
