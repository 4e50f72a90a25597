package services

import (
	"context"
	"time"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

const defaultLanguage = "en"

// ProfileService handles per-user profile reads and writes. Profiles are
// created lazily; a user who never saved one reads back defaults.
type ProfileService struct {
	profiles repositories.UserProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profiles repositories.UserProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get retrieves the calling user's profile, or defaults when none exists yet
func (s *ProfileService) Get(ctx context.Context, userID string) (*entities.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return &entities.UserProfile{ID: userID, Language: defaultLanguage}, nil
		}
		return nil, err
	}
	return profile, nil
}

// Update writes the calling user's profile, creating it on first save
func (s *ProfileService) Update(ctx context.Context, userID string, profile *entities.UserProfile) (*entities.UserProfile, error) {
	if profile.Language == "" {
		profile.Language = defaultLanguage
	}

	now := time.Now().UTC()
	profile.ID = userID
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
