package providers

import (
	"context"

	"github.com/voyara/backend/internal/domain/entities"
)

// IdentityProvider resolves bearer tokens to callers and manages accounts.
// The API layer treats it as an external collaborator; the default
// implementation issues JWTs backed by the local users table.
type IdentityProvider interface {
	// SignUp registers a new account and returns its identity.
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*entities.UserIdentity, error)

	// SignInWithPassword verifies credentials and mints a session token.
	SignInWithPassword(ctx context.Context, email, password string) (*entities.Session, error)

	// GetUser resolves a bearer token to the caller's identity.
	GetUser(ctx context.Context, token string) (*entities.UserIdentity, error)

	// SignOut revokes a token for its remaining lifetime.
	SignOut(ctx context.Context, token string) error
}
