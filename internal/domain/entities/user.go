package entities

import "time"

// User is an account row owned by the identity provider.
type User struct {
	ID           string            `json:"id" db:"id"`
	Email        string            `json:"email" db:"email"`
	PasswordHash string            `json:"-" db:"password_hash"`
	Metadata     map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// UserIdentity is the resolved caller of an authenticated request.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful password sign-in.
type Session struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserIdentity `json:"user"`
}
