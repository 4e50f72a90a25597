package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/api/handlers"
	"github.com/voyara/backend/internal/domain/entities"
	apperrors "github.com/voyara/backend/pkg/errors"
)

type stubIdentityProvider struct {
	signUpFn  func(ctx context.Context, email, password string, metadata map[string]string) (*entities.UserIdentity, error)
	signInFn  func(ctx context.Context, email, password string) (*entities.Session, error)
	getUserFn func(ctx context.Context, token string) (*entities.UserIdentity, error)
	signOutFn func(ctx context.Context, token string) error
}

func (s *stubIdentityProvider) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*entities.UserIdentity, error) {
	return s.signUpFn(ctx, email, password, metadata)
}

func (s *stubIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*entities.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubIdentityProvider) GetUser(ctx context.Context, token string) (*entities.UserIdentity, error) {
	return s.getUserFn(ctx, token)
}

func (s *stubIdentityProvider) SignOut(ctx context.Context, token string) error {
	return s.signOutFn(ctx, token)
}

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("registers an account", func(t *testing.T) {
		provider := &stubIdentityProvider{
			signUpFn: func(_ context.Context, email, password string, metadata map[string]string) (*entities.UserIdentity, error) {
				assert.Equal(t, "ada@example.com", email)
				assert.Equal(t, "s3cret-pass", password)
				assert.Equal(t, map[string]string{"full_name": "Ada Lovelace"}, metadata)
				return &entities.UserIdentity{ID: "user-1", Email: email}, nil
			},
		}
		handler := handlers.NewAuthHandler(provider)

		payload := bytes.NewBufferString(`{"email":"ada@example.com","password":"s3cret-pass","full_name":"Ada Lovelace"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", payload)
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			User *entities.UserIdentity `json:"user"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "user-1", body.User.ID)
	})

	t.Run("rejects a missing password", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubIdentityProvider{})

		payload := bytes.NewBufferString(`{"email":"ada@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", payload)
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.CodeMissingFields, errorBody(t, rec)["code"])
	})

	t.Run("maps a duplicate email to 409", func(t *testing.T) {
		provider := &stubIdentityProvider{
			signUpFn: func(context.Context, string, string, map[string]string) (*entities.UserIdentity, error) {
				return nil, apperrors.NewConflictError(apperrors.CodeEmailTaken, "an account with this email already exists")
			},
		}
		handler := handlers.NewAuthHandler(provider)

		payload := bytes.NewBufferString(`{"email":"ada@example.com","password":"s3cret-pass"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", payload)
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apperrors.CodeEmailTaken, errorBody(t, rec)["code"])
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	t.Run("returns a session", func(t *testing.T) {
		provider := &stubIdentityProvider{
			signInFn: func(_ context.Context, email, password string) (*entities.Session, error) {
				return &entities.Session{
					AccessToken: "signed-token",
					User:        entities.UserIdentity{ID: "user-1", Email: email},
				}, nil
			},
		}
		handler := handlers.NewAuthHandler(provider)

		payload := bytes.NewBufferString(`{"email":"ada@example.com","password":"s3cret-pass"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", payload)
		rec := httptest.NewRecorder()

		handler.SignIn(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var session entities.Session
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
		assert.Equal(t, "signed-token", session.AccessToken)
	})

	t.Run("maps bad credentials to 401", func(t *testing.T) {
		provider := &stubIdentityProvider{
			signInFn: func(context.Context, string, string) (*entities.Session, error) {
				return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidCredentials, "invalid email or password")
			},
		}
		handler := handlers.NewAuthHandler(provider)

		payload := bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", payload)
		rec := httptest.NewRecorder()

		handler.SignIn(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apperrors.CodeInvalidCredentials, errorBody(t, rec)["code"])
	})
}

func TestAuthHandler_SignOut(t *testing.T) {
	t.Run("revokes the session token", func(t *testing.T) {
		provider := &stubIdentityProvider{
			signOutFn: func(_ context.Context, token string) error {
				assert.Equal(t, "token", token)
				return nil
			},
		}
		handler := handlers.NewAuthHandler(provider)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
		rec := httptest.NewRecorder()

		handler.SignOut(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("rejects a request without a token", func(t *testing.T) {
		handler := handlers.NewAuthHandler(&stubIdentityProvider{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		rec := httptest.NewRecorder()

		handler.SignOut(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
