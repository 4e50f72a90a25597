package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ChangeAction is the kind of mutation an event describes.
type ChangeAction string

const (
	ChangeActionCreated ChangeAction = "created"
	ChangeActionUpdated ChangeAction = "updated"
	ChangeActionDeleted ChangeAction = "deleted"
)

// ChangeEvent announces a write to a record so listeners (cache
// invalidation, the search indexer) can react.
type ChangeEvent struct {
	ID        string       `json:"id"`
	Entity    string       `json:"entity"`
	EntityID  string       `json:"entity_id"`
	Action    ChangeAction `json:"action"`
	OwnerID   string       `json:"owner_id,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewChangeEvent creates a change event for an entity mutation.
func NewChangeEvent(entity, entityID string, action ChangeAction, ownerID string) *ChangeEvent {
	return &ChangeEvent{
		ID:        generateEventID(),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		OwnerID:   ownerID,
		Timestamp: time.Now().UTC(),
	}
}

func generateEventID() string {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return time.Now().Format("150405.000")
	}
	return time.Now().Format("20060102150405") + "-" + hex.EncodeToString(bytes)
}
