package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/auth"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/services"
	"github.com/stocka-io/stocka-api/internal/session"
)

// AuthHandler serves login, logout and refresh.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns an access/refresh token pair
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Email, req.Password, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrAccountDeactivated):
			writeError(w, http.StatusForbidden, "Account is deactivated")
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout invalidates the session behind a refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken, requestMeta(r)); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Error().Err(err).Msg("Logout failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Refresh mints a new access token for a live refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	access, err := h.authService.Refresh(r.Context(), req.RefreshToken, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnrecognized):
			writeError(w, http.StatusNotFound, "Refresh token not recognized")
		case errors.Is(err, auth.ErrIdentityMismatch),
			errors.Is(err, auth.ErrTokenInvalid),
			errors.Is(err, auth.ErrTokenExpired):
			writeError(w, http.StatusForbidden, "Refresh token rejected")
		default:
			log.Error().Err(err).Msg("Refresh failed")
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"auth": true, "access": access})
}
