package entities

import "time"

// UserProfile holds per-user display settings. One row per user, keyed by
// the user id; written via upsert.
type UserProfile struct {
	ID          string            `json:"id" db:"id"`
	FullName    string            `json:"full_name,omitempty" db:"full_name"`
	AvatarURL   string            `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio         string            `json:"bio,omitempty" db:"bio"`
	Language    string            `json:"language" db:"language"`
	Preferences map[string]string `json:"preferences,omitempty" db:"preferences"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}
