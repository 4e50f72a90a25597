package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/adapters/providers/identity"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/pkg/config"
	apperrors "github.com/voyara/backend/pkg/errors"
)

type memoryUserRepo struct {
	byEmail map[string]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]*entities.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entities.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperrors.NewConflictError(apperrors.CodeEmailTaken, "email is already registered")
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, apperrors.NewNotFoundError("key not found")
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, _ string) error { return nil }

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func newTestProvider(t *testing.T) providers.IdentityProvider {
	t.Helper()
	return identity.NewJWTProvider(newMemoryUserRepo(), newMemoryCache(), &config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestJWTProvider_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new account", func(t *testing.T) {
		provider := newTestProvider(t)

		user, err := provider.SignUp(ctx, "ada@example.com", "secret123", map[string]string{"full_name": "Ada"})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		provider := newTestProvider(t)

		_, err := provider.SignUp(ctx, "not-an-email", "secret123", nil)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		provider := newTestProvider(t)

		_, err := provider.SignUp(ctx, "ada@example.com", "short", nil)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		provider := newTestProvider(t)

		_, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
		require.NoError(t, err)

		_, err = provider.SignUp(ctx, "ada@example.com", "secret456", nil)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeEmailTaken, appErr.Code)
	})
}

func TestJWTProvider_SignInWithPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a session for valid credentials", func(t *testing.T) {
		provider := newTestProvider(t)
		_, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
		require.NoError(t, err)

		session, err := provider.SignInWithPassword(ctx, "ada@example.com", "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "ada@example.com", session.User.Email)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		provider := newTestProvider(t)
		_, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
		require.NoError(t, err)

		_, err = provider.SignInWithPassword(ctx, "ada@example.com", "wrong-password")

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
	})

	t.Run("rejects an unknown email without leaking existence", func(t *testing.T) {
		provider := newTestProvider(t)

		_, err := provider.SignInWithPassword(ctx, "nobody@example.com", "secret123")

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
	})
}

func TestJWTProvider_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a minted token", func(t *testing.T) {
		provider := newTestProvider(t)
		registered, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
		require.NoError(t, err)

		session, err := provider.SignInWithPassword(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)

		user, err := provider.GetUser(ctx, session.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		provider := newTestProvider(t)

		_, err := provider.GetUser(ctx, "not.a.token")

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		users := newMemoryUserRepo()
		cache := newMemoryCache()
		provider := identity.NewJWTProvider(users, cache, &config.AuthConfig{
			JWTSecret: "secret-a", TokenTTL: time.Hour,
		})
		other := identity.NewJWTProvider(users, cache, &config.AuthConfig{
			JWTSecret: "secret-b", TokenTTL: time.Hour,
		})

		_, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
		require.NoError(t, err)
		session, err := other.SignInWithPassword(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)

		_, err = provider.GetUser(ctx, session.AccessToken)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
	})
}

func TestJWTProvider_SignOut(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	_, err := provider.SignUp(ctx, "ada@example.com", "secret123", nil)
	require.NoError(t, err)
	session, err := provider.SignInWithPassword(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, provider.SignOut(ctx, session.AccessToken))

	_, err = provider.GetUser(ctx, session.AccessToken)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
}
