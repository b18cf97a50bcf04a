package handlers

import (
	"net/http"

	"github.com/stocka-io/stocka-api/internal/middleware"
)

// MeHandler echoes the authenticated identity.
type MeHandler struct{}

// NewMeHandler creates a new me handler
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Me returns the identity the auth guard attached to the request
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header is required")
		return
	}
	writeJSON(w, http.StatusOK, identity)
}
