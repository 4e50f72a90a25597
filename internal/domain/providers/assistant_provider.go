package providers

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// AssistantProvider produces a reply for a chat message within a trip
// context. Implementations are pure with respect to trip and authorization
// state; they never write to the record store.
type AssistantProvider interface {
	Chat(ctx context.Context, req *entities.AssistantContext) (*entities.AssistantReply, error)
}
