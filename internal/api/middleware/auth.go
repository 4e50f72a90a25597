package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	apperrors "github.com/voyara/backend/pkg/errors"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	tokenContextKey    contextKey = "token"
)

// AuthMiddleware resolves bearer tokens to user identities
type AuthMiddleware struct {
	identity providers.IdentityProvider
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(identity providers.IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Require rejects requests without a valid bearer token and stores the
// resolved identity in the request context
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized,
				apperrors.NewUnauthenticatedError(apperrors.CodeMissingToken, "authorization header is required"))
			return
		}

		user, err := m.identity.GetUser(r.Context(), token)
		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.NewUnauthenticatedError(apperrors.CodeInvalidToken, "invalid or expired token")
			}
			writeAuthError(w, http.StatusUnauthorized, appErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user, token)))
	})
}

// WithIdentity returns a context carrying an authenticated caller and its
// bearer token
func WithIdentity(ctx context.Context, user *entities.UserIdentity, token string) context.Context {
	ctx = context.WithValue(ctx, identityContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// IdentityFromContext returns the authenticated caller, if any
func IdentityFromContext(ctx context.Context) (*entities.UserIdentity, bool) {
	user, ok := ctx.Value(identityContextKey).(*entities.UserIdentity)
	return user, ok
}

// TokenFromContext returns the raw bearer token of the request, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"message": appErr.Message,
		"code":    appErr.Code,
	})
}
