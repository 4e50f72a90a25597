package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// TripService is the trip operations surface consumed by the handler
type TripService interface {
	Create(ctx context.Context, ownerID string, trip *entities.Trip) (*entities.Trip, error)
	Get(ctx context.Context, callerID, tripID string) (*entities.Trip, error)
	List(ctx context.Context, callerID string, filter repositories.TripFilter) ([]*entities.Trip, error)
	Update(ctx context.Context, callerID, tripID string, update *entities.TripUpdate) (*entities.Trip, error)
	Delete(ctx context.Context, callerID, tripID string) error
	AddDestination(ctx context.Context, callerID, tripID string, td *entities.TripDestination) (*entities.TripDestination, error)
	ListDestinations(ctx context.Context, callerID, tripID string) ([]*entities.TripDestination, error)
	RemoveDestination(ctx context.Context, callerID, tripID, destinationID string) error
}

// TripHandler handles trip-related HTTP requests
type TripHandler struct {
	trips TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(trips TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	CoverPhoto  string   `json:"cover_photo"`
	Budget      *float64 `json:"budget"`
}

type addTripDestinationRequest struct {
	DestinationID string  `json:"destination_id"`
	VisitOrder    *int    `json:"visit_order"`
	Notes         string  `json:"notes"`
	ArrivalDate   *string `json:"arrival_date"`
	DepartureDate *string `json:"departure_date"`
}

// CreateTrip handles POST /api/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	trip, err := h.trips.Create(r.Context(), caller.ID, &entities.Trip{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CoverPhoto:  req.CoverPhoto,
		Budget:      req.Budget,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/trips
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	filter := repositories.TripFilter{
		Status: entities.TripStatus(r.URL.Query().Get("status")),
	}

	trips, err := h.trips.List(r.Context(), caller.ID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trips": trips,
		"count": len(trips),
	})
}

// GetTrip handles GET /api/trips/{id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	trip, err := h.trips.Get(r.Context(), caller.ID, r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{id}
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var update entities.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	trip, err := h.trips.Update(r.Context(), caller.ID, r.PathValue("id"), &update)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/{id}
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	if err := h.trips.Delete(r.Context(), caller.ID, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTripDestination handles POST /api/trips/{id}/destinations
func (h *TripHandler) AddTripDestination(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var req addTripDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	td, err := h.trips.AddDestination(r.Context(), caller.ID, r.PathValue("id"), &entities.TripDestination{
		DestinationID: req.DestinationID,
		VisitOrder:    req.VisitOrder,
		Notes:         req.Notes,
		ArrivalDate:   req.ArrivalDate,
		DepartureDate: req.DepartureDate,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, td)
}

// ListTripDestinations handles GET /api/trips/{id}/destinations
func (h *TripHandler) ListTripDestinations(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	items, err := h.trips.ListDestinations(r.Context(), caller.ID, r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"destinations": items,
		"count":        len(items),
	})
}

// RemoveTripDestination handles DELETE /api/trips/{id}/destinations/{destinationId}
func (h *TripHandler) RemoveTripDestination(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	err := h.trips.RemoveDestination(r.Context(), caller.ID, r.PathValue("id"), r.PathValue("destinationId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
