package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/services"
)

// RegisterHandler serves tenant registration.
type RegisterHandler struct {
	registerService *services.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *services.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// Register provisions a new tenant and returns its first session
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.User.Email = strings.TrimSpace(strings.ToLower(req.User.Email))
	req.BusinessContact.Email = strings.TrimSpace(strings.ToLower(req.BusinessContact.Email))

	resp, err := h.registerService.Register(r.Context(), req, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrUserEmailTaken),
			errors.Is(err, services.ErrBusinessEmailTaken),
			errors.Is(err, services.ErrBothEmailsTaken):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			log.Error().Err(err).Str("email", req.User.Email).Msg("Registration failed")
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
