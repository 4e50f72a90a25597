package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/application/services"
	"github.com/voyara/backend/internal/domain/entities"
	apperrors "github.com/voyara/backend/pkg/errors"
)

func TestAssistantService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the provider", func(t *testing.T) {
		provider := new(MockAssistantProvider)
		service := services.NewAssistantService(provider, new(MockTripRepository))

		provider.On("Chat", mock.Anything, mock.AnythingOfType("*entities.AssistantContext")).
			Return(&entities.AssistantReply{Reply: "hello"}, nil)

		reply, err := service.Chat(ctx, "user-1", "", &entities.AssistantContext{Message: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "hello", reply.Reply)
	})

	t.Run("rejects an empty message", func(t *testing.T) {
		service := services.NewAssistantService(new(MockAssistantProvider), new(MockTripRepository))

		_, err := service.Chat(ctx, "user-1", "", &entities.AssistantContext{})

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("rejects an unknown time slot", func(t *testing.T) {
		service := services.NewAssistantService(new(MockAssistantProvider), new(MockTripRepository))

		_, err := service.Chat(ctx, "user-1", "", &entities.AssistantContext{
			Message:  "plan my day",
			TimeSlot: "midnight",
		})

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("rejects an exhausted budget", func(t *testing.T) {
		service := services.NewAssistantService(new(MockAssistantProvider), new(MockTripRepository))

		budget := 0.0
		_, err := service.Chat(ctx, "user-1", "", &entities.AssistantContext{
			Message:         "what now?",
			RemainingBudget: &budget,
		})

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("attaches an owned trip", func(t *testing.T) {
		provider := new(MockAssistantProvider)
		trips := new(MockTripRepository)
		service := services.NewAssistantService(provider, trips)

		trip := ownedTrip("user-1")
		trips.On("GetByID", mock.Anything, "trip-1").Return(trip, nil)
		provider.On("Chat", mock.Anything, mock.MatchedBy(func(req *entities.AssistantContext) bool {
			return req.Trip != nil && req.Trip.ID == "trip-1"
		})).Return(&entities.AssistantReply{Reply: "about your trip"}, nil)

		_, err := service.Chat(ctx, "user-1", "trip-1", &entities.AssistantContext{Message: "budget?"})

		assert.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("forbids referencing another user's trip", func(t *testing.T) {
		trips := new(MockTripRepository)
		service := services.NewAssistantService(new(MockAssistantProvider), trips)

		trips.On("GetByID", mock.Anything, "trip-1").Return(ownedTrip("someone-else"), nil)

		_, err := service.Chat(ctx, "user-1", "trip-1", &entities.AssistantContext{Message: "budget?"})

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})
}
