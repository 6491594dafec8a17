package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
	"rentify-backend/internal/security"
	"rentify-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Encoding response failed", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondServiceError maps service and domain errors to HTTP statuses.
// Unrecognized errors become a 500 with a generic message; the detail
// stays in the log.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrDatesUnavailable):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrOwnItem):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNoDates):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoCoordinate):
		respondError(w, http.StatusUnprocessableEntity, "no location on profile")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, "invalid or expired credential")
	case errors.Is(err, service.ErrProfileMissing):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
