package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyara/backend/internal/api/middleware"
	"github.com/voyara/backend/internal/domain/providers"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	identity providers.IdentityProvider
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity providers.IdentityProvider) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required", apperrors.CodeMissingFields)
		return
	}

	var metadata map[string]string
	if req.FullName != "" {
		metadata = map[string]string{"full_name": req.FullName}
	}

	user, err := h.identity.SignUp(r.Context(), req.Email, req.Password, metadata)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// SignIn handles POST /api/auth/login
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", apperrors.CodeMissingFields)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required", apperrors.CodeMissingFields)
		return
	}

	session, err := h.identity.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// SignOut handles POST /api/auth/logout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authorization header is required", apperrors.CodeMissingToken)
		return
	}

	if err := h.identity.SignOut(r.Context(), token); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
