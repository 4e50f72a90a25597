package identity

import (
	"context"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/pkg/config"
	apperrors "github.com/voyara/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	denylistKeyPrefix = "voyara:auth:denylist:"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// JWTProvider implements IdentityProvider with HS256 tokens backed by the
// local users table. Revoked tokens are held in the cache until they expire.
type JWTProvider struct {
	users  repositories.UserRepository
	cache  providers.CacheProvider
	secret []byte
	ttl    time.Duration
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewJWTProvider creates a new JWT identity provider
func NewJWTProvider(users repositories.UserRepository, cache providers.CacheProvider, cfg *config.AuthConfig) providers.IdentityProvider {
	return &JWTProvider{
		users:  users,
		cache:  cache,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// SignUp registers a new account
func (p *JWTProvider) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*entities.UserIdentity, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingFields, "a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError(apperrors.CodeWeakPassword, "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}

	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &entities.UserIdentity{ID: user.ID, Email: user.Email}, nil
}

// SignInWithPassword verifies credentials and mints a session token
func (p *JWTProvider) SignInWithPassword(ctx context.Context, email, password string) (*entities.Session, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidCredentials, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidCredentials, "invalid email or password")
	}

	expiresAt := time.Now().UTC().Add(p.ttl)
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign token", err)
	}

	return &entities.Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        entities.UserIdentity{ID: user.ID, Email: user.Email},
	}, nil
}

// GetUser resolves a bearer token to the caller's identity
func (p *JWTProvider) GetUser(ctx context.Context, token string) (*entities.UserIdentity, error) {
	claims, err := p.parseToken(token)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		revoked, err := p.cache.Exists(ctx, denylistKeyPrefix+claims.ID)
		if err == nil && revoked {
			return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidToken, "token has been revoked")
		}
	}

	return &entities.UserIdentity{ID: claims.Subject, Email: claims.Email}, nil
}

// SignOut revokes a token for its remaining lifetime
func (p *JWTProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.parseToken(token)
	if err != nil {
		return err
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || p.cache == nil {
		return nil
	}

	return p.cache.Set(ctx, denylistKeyPrefix+claims.ID, []byte("revoked"), int(remaining.Seconds())+1)
}

func (p *JWTProvider) parseToken(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidToken, "unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthenticatedError(apperrors.CodeInvalidToken, "invalid or expired token")
	}
	return claims, nil
}
