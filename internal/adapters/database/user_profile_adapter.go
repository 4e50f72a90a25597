package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// UserProfileAdapter implements the UserProfileRepository interface
type UserProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserProfileAdapter creates a new user profile adapter
func NewUserProfileAdapter(client *postgres.Client) repositories.UserProfileRepository {
	return &UserProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a profile by user ID
func (a *UserProfileAdapter) GetByID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	query, args, err := a.db.Select(
		"id", "full_name", "avatar_url", "bio", "language", "preferences",
		"created_at", "updated_at",
	).
		From("user_profiles").
		Where(goqu.Ex{"id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserProfile{}
	var fullName, avatarURL, bio sql.NullString
	var preferences []byte

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&fullName,
		&avatarURL,
		&bio,
		&profile.Language,
		&preferences,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	profile.FullName = fullName.String
	profile.AvatarURL = avatarURL.String
	profile.Bio = bio.String
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &profile.Preferences); err != nil {
			return nil, apperrors.NewInternalError("failed to unmarshal profile preferences", err)
		}
	}

	return profile, nil
}

// Upsert writes a profile, creating the row on first save
func (a *UserProfileAdapter) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	preferences, err := json.Marshal(profile.Preferences)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal profile preferences", err)
	}

	update := goqu.Record{
		"full_name":   sql.NullString{String: profile.FullName, Valid: profile.FullName != ""},
		"avatar_url":  sql.NullString{String: profile.AvatarURL, Valid: profile.AvatarURL != ""},
		"bio":         sql.NullString{String: profile.Bio, Valid: profile.Bio != ""},
		"language":    profile.Language,
		"preferences": preferences,
		"updated_at":  profile.UpdatedAt,
	}

	record := goqu.Record{
		"id":         profile.ID,
		"created_at": profile.CreatedAt,
	}
	for column, value := range update {
		record[column] = value
	}

	query, args, err := a.db.Insert("user_profiles").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", update)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert profile", err)
	}

	return nil
}
