package services

import (
	"context"
	"fmt"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

var validTimeSlots = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
}

// AssistantService fronts the assistant provider with the hard rules that
// must hold before any reply is produced, and attaches trip context the
// caller is allowed to see.
type AssistantService struct {
	provider providers.AssistantProvider
	trips    repositories.TripRepository
}

// NewAssistantService creates a new assistant service
func NewAssistantService(provider providers.AssistantProvider, trips repositories.TripRepository) *AssistantService {
	return &AssistantService{
		provider: provider,
		trips:    trips,
	}
}

// Chat validates the request, loads the referenced trip when the caller
// owns it, and delegates to the configured provider
func (s *AssistantService) Chat(ctx context.Context, callerID, tripID string, req *entities.AssistantContext) (*entities.AssistantReply, error) {
	if req.Message == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "message is required")
	}
	if req.TimeSlot != "" && !validTimeSlots[req.TimeSlot] {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields,
			fmt.Sprintf("time_slot must be morning, afternoon or evening, got %q", req.TimeSlot))
	}
	if req.Day < 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "day must be positive")
	}
	if req.RemainingBudget != nil && *req.RemainingBudget <= 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "no remaining budget available")
	}

	if tripID != "" {
		trip, err := s.trips.GetByID(ctx, tripID)
		if err != nil {
			return nil, err
		}
		if trip.OwnerID != callerID {
			return nil, apperrors.NewForbiddenError("you do not have access to this trip")
		}
		req.Trip = trip
	}

	return s.provider.Chat(ctx, req)
}
