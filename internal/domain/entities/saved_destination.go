package entities

import "time"

// SavedDestination is a per-user bookmark of a destination. At most one row
// exists per (user, destination) pair, enforced by a store-level unique
// constraint.
type SavedDestination struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	DestinationID string    `json:"destination_id" db:"destination_id"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	SavedAt       time.Time `json:"saved_at" db:"saved_at"`

	// Destination is populated on joined reads.
	Destination *Destination `json:"destination,omitempty" db:"-"`
}
