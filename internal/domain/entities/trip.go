package entities

import "time"

// TripStatus is the lifecycle label of a trip.
type TripStatus string

const (
	TripStatusPlanning  TripStatus = "planning"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// IsValid reports whether the value is one of the known statuses.
func (s TripStatus) IsValid() bool {
	switch s {
	case TripStatusPlanning, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// CanTransitionTo validates a status change. Trips move forward through
// planning -> ongoing -> completed; cancelled is reachable from any
// non-terminal state. Re-asserting the current status is allowed.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case TripStatusPlanning:
		return next == TripStatusOngoing || next == TripStatusCancelled
	case TripStatusOngoing:
		return next == TripStatusCompleted || next == TripStatusCancelled
	default:
		return false
	}
}

// Trip represents a user-owned travel plan.
type Trip struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	StartDate   string     `json:"start_date" db:"start_date"`
	EndDate     string     `json:"end_date" db:"end_date"`
	CoverPhoto  string     `json:"cover_photo,omitempty" db:"cover_photo"`
	Budget      *float64   `json:"budget,omitempty" db:"budget"`
	Status      TripStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TripDateLayout is the calendar-date wire format for start_date/end_date.
const TripDateLayout = "2006-01-02"

// ParseTripDate parses a calendar date in the API wire format.
func ParseTripDate(value string) (time.Time, error) {
	return time.Parse(TripDateLayout, value)
}

// TripUpdate carries a partial update; nil fields are left untouched.
type TripUpdate struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	StartDate   *string     `json:"start_date,omitempty"`
	EndDate     *string     `json:"end_date,omitempty"`
	CoverPhoto  *string     `json:"cover_photo,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	Status      *TripStatus `json:"status,omitempty"`
}
