package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/domain/entities"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// ProfileService is the profile operations surface consumed by the handler
type ProfileService interface {
	Get(ctx context.Context, userID string) (*entities.UserProfile, error)
	Update(ctx context.Context, userID string, profile *entities.UserProfile) (*entities.UserProfile, error)
}

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profiles ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	FullName    string            `json:"full_name"`
	AvatarURL   string            `json:"avatar_url"`
	Bio         string            `json:"bio"`
	Language    string            `json:"language"`
	Preferences map[string]string `json:"preferences"`
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	profile, err := h.profiles.Get(r.Context(), caller.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	profile, err := h.profiles.Update(r.Context(), caller.ID, &entities.UserProfile{
		FullName:    req.FullName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		Language:    req.Language,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}
