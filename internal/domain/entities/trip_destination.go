package entities

import "time"

// TripDestination links a destination into a trip's itinerary. A trip may
// reference the same destination more than once; visit order is caller
// supplied and not required to be unique.
type TripDestination struct {
	ID            string    `json:"id" db:"id"`
	TripID        string    `json:"trip_id" db:"trip_id"`
	DestinationID string    `json:"destination_id" db:"destination_id"`
	VisitOrder    *int      `json:"visit_order,omitempty" db:"visit_order"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	ArrivalDate   *string   `json:"arrival_date,omitempty" db:"arrival_date"`
	DepartureDate *string   `json:"departure_date,omitempty" db:"departure_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Destination is populated on joined reads.
	Destination *Destination `json:"destination,omitempty" db:"-"`
}
