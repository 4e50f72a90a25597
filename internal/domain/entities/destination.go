package entities

import "time"

// Destination is a browsable travel destination. Destinations are created
// by the seed process and are read-only through the API.
type Destination struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Country     string    `json:"country" db:"country"`
	Description string    `json:"description,omitempty" db:"description"`
	Image       string    `json:"image,omitempty" db:"image"`
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`
	Rating      *float64  `json:"rating,omitempty" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
