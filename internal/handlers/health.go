package handlers

import (
	"net/http"
	"time"

	"github.com/stocka-io/stocka-api/internal/session"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db       *gorm.DB
	sessions session.Store
}

func NewHealthHandler(db *gorm.DB, sessions session.Store) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	// Check database
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["database"] = "healthy"
	}

	// Check session store
	if err := h.sessions.Ping(r.Context()); err != nil {
		response.Services["sessions"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["sessions"] = "healthy"
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	// Check if service is ready to accept requests
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
