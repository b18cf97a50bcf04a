package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/middleware"
	"github.com/stocka-io/stocka-api/internal/repository"
)

// AuditHandler serves the tenant's auth audit trail.
type AuditHandler struct {
	auditRepo *repository.AuditRepository
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditRepo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// List returns audit entries for the authenticated identity's business
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.auditRepo.GetByBusinessID(r.Context(), identity.BusinessID, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list audit logs")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
