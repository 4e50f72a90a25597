package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/api/handlers"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	apperrors "github.com/voyara/backend/pkg/errors"
)

type stubDestinationService struct {
	listFn      func(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error)
	getFn       func(ctx context.Context, id string) (*entities.Destination, error)
	saveFn      func(ctx context.Context, userID, destinationID, notes string) (*entities.SavedDestination, error)
	listSavedFn func(ctx context.Context, userID string) ([]*entities.SavedDestination, error)
	unsaveFn    func(ctx context.Context, userID, destinationID string) error
}

func (s *stubDestinationService) List(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
	return s.listFn(ctx, filter)
}

func (s *stubDestinationService) Get(ctx context.Context, id string) (*entities.Destination, error) {
	return s.getFn(ctx, id)
}

func (s *stubDestinationService) Save(ctx context.Context, userID, destinationID, notes string) (*entities.SavedDestination, error) {
	return s.saveFn(ctx, userID, destinationID, notes)
}

func (s *stubDestinationService) ListSaved(ctx context.Context, userID string) ([]*entities.SavedDestination, error) {
	return s.listSavedFn(ctx, userID)
}

func (s *stubDestinationService) Unsave(ctx context.Context, userID, destinationID string) error {
	return s.unsaveFn(ctx, userID, destinationID)
}

func TestDestinationHandler_ListDestinations(t *testing.T) {
	t.Run("passes query filters through", func(t *testing.T) {
		service := &stubDestinationService{
			listFn: func(_ context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
				assert.Equal(t, "Japan", filter.Country)
				assert.Equal(t, "temple", filter.Search)
				assert.Equal(t, 10, filter.Limit)
				return []*entities.Destination{{ID: "dest-1", Name: "Kyoto"}}, nil
			},
		}
		handler := handlers.NewDestinationHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/api/destinations?country=Japan&search=temple&limit=10", nil)
		rec := httptest.NewRecorder()

		handler.ListDestinations(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Destinations []*entities.Destination `json:"destinations"`
			Count        int                     `json:"count"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, "Kyoto", body.Destinations[0].Name)
	})

	t.Run("caps an oversized limit at the default", func(t *testing.T) {
		service := &stubDestinationService{
			listFn: func(_ context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
				assert.Equal(t, 30, filter.Limit)
				return nil, nil
			},
		}
		handler := handlers.NewDestinationHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/api/destinations?limit=5000", nil)
		rec := httptest.NewRecorder()

		handler.ListDestinations(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDestinationHandler_GetDestination(t *testing.T) {
	service := &stubDestinationService{
		getFn: func(_ context.Context, id string) (*entities.Destination, error) {
			if id != "dest-1" {
				return nil, apperrors.NewNotFoundError("destination not found")
			}
			return &entities.Destination{ID: "dest-1", Name: "Kyoto"}, nil
		},
	}
	handler := handlers.NewDestinationHandler(service)

	t.Run("returns the destination", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/destinations/dest-1", nil)
		req.SetPathValue("id", "dest-1")
		rec := httptest.NewRecorder()

		handler.GetDestination(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/destinations/missing", nil)
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()

		handler.GetDestination(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDestinationHandler_SaveDestination(t *testing.T) {
	t.Run("saves for the caller", func(t *testing.T) {
		service := &stubDestinationService{
			saveFn: func(_ context.Context, userID, destinationID, notes string) (*entities.SavedDestination, error) {
				assert.Equal(t, "user-1", userID)
				assert.Equal(t, "dest-1", destinationID)
				assert.Equal(t, "honeymoon idea", notes)
				return &entities.SavedDestination{ID: "saved-1", UserID: userID, DestinationID: destinationID}, nil
			},
		}
		handler := handlers.NewDestinationHandler(service)

		payload := bytes.NewBufferString(`{"destination_id":"dest-1","notes":"honeymoon idea"}`)
		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/destinations/saved", payload))
		rec := httptest.NewRecorder()

		handler.SaveDestination(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("maps a double save to 409", func(t *testing.T) {
		service := &stubDestinationService{
			saveFn: func(context.Context, string, string, string) (*entities.SavedDestination, error) {
				return nil, apperrors.NewConflictError(apperrors.CodeAlreadySaved, "destination already saved")
			},
		}
		handler := handlers.NewDestinationHandler(service)

		payload := bytes.NewBufferString(`{"destination_id":"dest-1"}`)
		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/destinations/saved", payload))
		rec := httptest.NewRecorder()

		handler.SaveDestination(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apperrors.CodeAlreadySaved, errorBody(t, rec)["code"])
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		handler := handlers.NewDestinationHandler(&stubDestinationService{})

		payload := bytes.NewBufferString(`{"destination_id":"dest-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/destinations/saved", payload)
		rec := httptest.NewRecorder()

		handler.SaveDestination(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDestinationHandler_ListSavedDestinations(t *testing.T) {
	service := &stubDestinationService{
		listSavedFn: func(_ context.Context, userID string) ([]*entities.SavedDestination, error) {
			assert.Equal(t, "user-1", userID)
			return []*entities.SavedDestination{{ID: "saved-1", DestinationID: "dest-1"}}, nil
		},
	}
	handler := handlers.NewDestinationHandler(service)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/destinations/saved", nil))
	rec := httptest.NewRecorder()

	handler.ListSavedDestinations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Saved []*entities.SavedDestination `json:"saved"`
		Count int                          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
}

func TestDestinationHandler_UnsaveDestination(t *testing.T) {
	t.Run("removes the save", func(t *testing.T) {
		service := &stubDestinationService{
			unsaveFn: func(_ context.Context, userID, destinationID string) error {
				assert.Equal(t, "user-1", userID)
				assert.Equal(t, "dest-1", destinationID)
				return nil
			},
		}
		handler := handlers.NewDestinationHandler(service)

		req := authenticated(httptest.NewRequest(http.MethodDelete, "/api/destinations/saved/dest-1", nil))
		req.SetPathValue("id", "dest-1")
		rec := httptest.NewRecorder()

		handler.UnsaveDestination(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("succeeds again for an already removed save", func(t *testing.T) {
		service := &stubDestinationService{
			unsaveFn: func(context.Context, string, string) error {
				return nil
			},
		}
		handler := handlers.NewDestinationHandler(service)

		req := authenticated(httptest.NewRequest(http.MethodDelete, "/api/destinations/saved/dest-9", nil))
		req.SetPathValue("id", "dest-9")
		rec := httptest.NewRecorder()

		handler.UnsaveDestination(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
