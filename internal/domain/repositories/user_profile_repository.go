package repositories

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// UserProfileRepository persists per-user profiles, one row per user.
type UserProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*entities.UserProfile, error)
	Upsert(ctx context.Context, profile *entities.UserProfile) error
}
