package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/voyara/backend/pkg/errors"
)

// Helper functions shared by all handlers. Errors go out as
// {"message": ..., "code": ...} so clients can branch on the code.

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message, code string) {
	respondWithJSON(w, statusCode, map[string]string{
		"message": message,
		"code":    code,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "internal server error", apperrors.CodeInternal)
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message, appErr.Code)
	case apperrors.ErrorTypeUnauthenticated:
		respondWithError(w, http.StatusUnauthorized, appErr.Message, appErr.Code)
	case apperrors.ErrorTypeForbidden:
		respondWithError(w, http.StatusForbidden, appErr.Message, appErr.Code)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message, appErr.Code)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message, appErr.Code)
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusBadGateway, appErr.Message, appErr.Code)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", apperrors.CodeInternal)
	}
}
