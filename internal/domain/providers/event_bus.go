package providers

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// entity-change events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ChangeEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ChangeEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelEntityChanges carries every entity-change event; consumers
// filter by the event's entity type.
const EventChannelEntityChanges = "voyara:entity:changes"
