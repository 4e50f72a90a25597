package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/domain/entities"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// AssistantService is the assistant operations surface consumed by the handler
type AssistantService interface {
	Chat(ctx context.Context, callerID, tripID string, req *entities.AssistantContext) (*entities.AssistantReply, error)
}

// AssistantHandler handles assistant chat HTTP requests
type AssistantHandler struct {
	assistant AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatRequest struct {
	Message         string   `json:"message"`
	TripID          string   `json:"trip_id"`
	Country         string   `json:"country"`
	RemainingBudget *float64 `json:"remaining_budget"`
	Day             int      `json:"day"`
	TimeSlot        string   `json:"time_slot"`
	Preferences     []string `json:"preferences"`
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}

	reply, err := h.assistant.Chat(r.Context(), caller.ID, req.TripID, &entities.AssistantContext{
		Message:         req.Message,
		Country:         req.Country,
		RemainingBudget: req.RemainingBudget,
		Day:             req.Day,
		TimeSlot:        req.TimeSlot,
		Preferences:     req.Preferences,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reply)
}
