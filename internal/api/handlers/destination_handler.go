package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

const defaultDestinationLimit = 30

// DestinationService is the destination operations surface consumed by the handler
type DestinationService interface {
	List(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error)
	Get(ctx context.Context, id string) (*entities.Destination, error)
	Save(ctx context.Context, userID, destinationID, notes string) (*entities.SavedDestination, error)
	ListSaved(ctx context.Context, userID string) ([]*entities.SavedDestination, error)
	Unsave(ctx context.Context, userID, destinationID string) error
}

// DestinationHandler handles destination-related HTTP requests
type DestinationHandler struct {
	destinations DestinationService
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(destinations DestinationService) *DestinationHandler {
	return &DestinationHandler{destinations: destinations}
}

type saveDestinationRequest struct {
	DestinationID string `json:"destination_id"`
	Notes         string `json:"notes"`
}

// ListDestinations handles GET /api/destinations
func (h *DestinationHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.DestinationFilter{
		Country: query.Get("country"),
		Search:  query.Get("search"),
		Limit:   defaultDestinationLimit,
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	destinations, err := h.destinations.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"destinations": destinations,
		"count":        len(destinations),
	})
}

// GetDestination handles GET /api/destinations/{id}
func (h *DestinationHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	destination, err := h.destinations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, destination)
}

// ListSavedDestinations handles GET /api/destinations/saved
func (h *DestinationHandler) ListSavedDestinations(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	saved, err := h.destinations.ListSaved(r.Context(), caller.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"saved": saved,
		"count": len(saved),
	})
}

// SaveDestination handles POST /api/destinations/saved
func (h *DestinationHandler) SaveDestination(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var req saveDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	saved, err := h.destinations.Save(r.Context(), caller.ID, req.DestinationID, req.Notes)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, saved)
}

// UnsaveDestination handles DELETE /api/destinations/saved/{id}
func (h *DestinationHandler) UnsaveDestination(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	if err := h.destinations.Unsave(r.Context(), caller.ID, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
