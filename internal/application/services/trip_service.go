package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// TripService handles business logic for trips and their itineraries.
// Every read and write is scoped to the calling user; trips are never
// visible outside their owner.
type TripService struct {
	trips            repositories.TripRepository
	tripDestinations repositories.TripDestinationRepository
	destinations     repositories.DestinationRepository
	eventBus         providers.EventBus
}

// NewTripService creates a new trip service
func NewTripService(
	trips repositories.TripRepository,
	tripDestinations repositories.TripDestinationRepository,
	destinations repositories.DestinationRepository,
	eventBus providers.EventBus,
) *TripService {
	return &TripService{
		trips:            trips,
		tripDestinations: tripDestinations,
		destinations:     destinations,
		eventBus:         eventBus,
	}
}

// Create creates a trip for the calling user. New trips always start in
// planning regardless of any caller-supplied status.
func (s *TripService) Create(ctx context.Context, ownerID string, trip *entities.Trip) (*entities.Trip, error) {
	if ownerID == "" || trip.Name == "" || trip.StartDate == "" || trip.EndDate == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields,
			"name, start_date and end_date are required")
	}

	if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}
	if err := validateBudget(trip.Budget); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip.ID = uuid.NewString()
	trip.OwnerID = ownerID
	trip.Status = entities.TripStatusPlanning
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.publishChange("trip", trip.ID, entities.ChangeActionCreated, ownerID)
	return trip, nil
}

// Get retrieves a trip owned by the calling user
func (s *TripService) Get(ctx context.Context, callerID, tripID string) (*entities.Trip, error) {
	return s.getOwned(ctx, callerID, tripID)
}

// List retrieves the calling user's trips, newest first
func (s *TripService) List(ctx context.Context, callerID string, filter repositories.TripFilter) ([]*entities.Trip, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatus,
			fmt.Sprintf("unknown trip status %q", filter.Status))
	}
	return s.trips.ListByOwner(ctx, callerID, filter)
}

// Update applies a partial update to a trip owned by the calling user. The
// merged result is validated as a whole, so an update that narrows the date
// window below the other date is rejected even though each field is valid
// on its own.
func (s *TripService) Update(ctx context.Context, callerID, tripID string, update *entities.TripUpdate) (*entities.Trip, error) {
	trip, err := s.getOwned(ctx, callerID, tripID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "name cannot be empty")
		}
		trip.Name = *update.Name
	}
	if update.Description != nil {
		trip.Description = *update.Description
	}
	if update.StartDate != nil {
		trip.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		trip.EndDate = *update.EndDate
	}
	if update.CoverPhoto != nil {
		trip.CoverPhoto = *update.CoverPhoto
	}
	if update.Budget != nil {
		trip.Budget = update.Budget
	}
	if update.Status != nil && *update.Status != trip.Status {
		if !trip.Status.CanTransitionTo(*update.Status) {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatus,
				fmt.Sprintf("cannot move trip from %s to %s", trip.Status, *update.Status))
		}
		trip.Status = *update.Status
	}

	if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}
	if err := validateBudget(trip.Budget); err != nil {
		return nil, err
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.publishChange("trip", trip.ID, entities.ChangeActionUpdated, callerID)
	return trip, nil
}

// Delete removes a trip owned by the calling user along with its itinerary
func (s *TripService) Delete(ctx context.Context, callerID, tripID string) error {
	if _, err := s.getOwned(ctx, callerID, tripID); err != nil {
		return err
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return err
	}

	s.publishChange("trip", tripID, entities.ChangeActionDeleted, callerID)
	return nil
}

// AddDestination links a destination into the itinerary of a trip owned by
// the calling user
func (s *TripService) AddDestination(ctx context.Context, callerID, tripID string, td *entities.TripDestination) (*entities.TripDestination, error) {
	if td.DestinationID == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "destination_id is required")
	}

	if _, err := s.getOwned(ctx, callerID, tripID); err != nil {
		return nil, err
	}
	if _, err := s.destinations.GetByID(ctx, td.DestinationID); err != nil {
		return nil, err
	}

	if err := validateStayDates(td.ArrivalDate, td.DepartureDate); err != nil {
		return nil, err
	}

	td.ID = uuid.NewString()
	td.TripID = tripID
	td.CreatedAt = time.Now().UTC()

	if err := s.tripDestinations.Create(ctx, td); err != nil {
		return nil, err
	}

	s.publishChange("trip", tripID, entities.ChangeActionUpdated, callerID)
	return td, nil
}

// ListDestinations retrieves the itinerary of a trip owned by the calling user
func (s *TripService) ListDestinations(ctx context.Context, callerID, tripID string) ([]*entities.TripDestination, error) {
	if _, err := s.getOwned(ctx, callerID, tripID); err != nil {
		return nil, err
	}
	return s.tripDestinations.ListByTrip(ctx, tripID)
}

// RemoveDestination removes a destination from the itinerary of a trip
// owned by the calling user
func (s *TripService) RemoveDestination(ctx context.Context, callerID, tripID, destinationID string) error {
	if _, err := s.getOwned(ctx, callerID, tripID); err != nil {
		return err
	}

	if err := s.tripDestinations.DeleteByTripAndDestination(ctx, tripID, destinationID); err != nil {
		return err
	}

	s.publishChange("trip", tripID, entities.ChangeActionUpdated, callerID)
	return nil
}

// getOwned fetches a trip and enforces ownership. Callers that are not the
// owner get a forbidden error, not a not-found, so a trip's existence is
// the only thing a non-owner can learn.
func (s *TripService) getOwned(ctx context.Context, callerID, tripID string) (*entities.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != callerID {
		return nil, apperrors.NewForbiddenError("you do not have access to this trip")
	}
	return trip, nil
}

func (s *TripService) publishChange(entity, entityID string, action entities.ChangeAction, ownerID string) {
	if s.eventBus == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	event := entities.NewChangeEvent(entity, entityID, action, ownerID)
	if err := s.eventBus.Publish(ctx, providers.EventChannelEntityChanges, event); err != nil {
		log.Printf("Warning: failed to publish %s event for %s %s: %v", action, entity, entityID, err)
	}
}

func validateDateRange(start, end string) error {
	startDate, err := entities.ParseTripDate(start)
	if err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"start_date must be formatted as YYYY-MM-DD")
	}
	endDate, err := entities.ParseTripDate(end)
	if err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"end_date must be formatted as YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"end_date must be on or after start_date")
	}
	return nil
}

// validateBudget accepts an unset budget; a set one must not be negative.
func validateBudget(budget *float64) error {
	if budget != nil && *budget < 0 {
		return apperrors.NewValidationError(apperrors.CodeInvalidBudget,
			"budget cannot be negative")
	}
	return nil
}

func validateStayDates(arrival, departure *string) error {
	var arrivalDate, departureDate time.Time
	var err error

	if arrival != nil {
		arrivalDate, err = entities.ParseTripDate(*arrival)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
				"arrival_date must be formatted as YYYY-MM-DD")
		}
	}
	if departure != nil {
		departureDate, err = entities.ParseTripDate(*departure)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
				"departure_date must be formatted as YYYY-MM-DD")
		}
	}
	if arrival != nil && departure != nil && departureDate.Before(arrivalDate) {
		return apperrors.NewValidationError(apperrors.CodeInvalidDateRange,
			"departure_date must be on or after arrival_date")
	}
	return nil
}
