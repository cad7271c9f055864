package handler

import (
	"net/http"
	"time"

	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type HealthHandler struct {
	db     *database.DB
	logger *logger.Logger
}

func NewHealthHandler(db *database.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: log.WithComponent("health_handler"),
	}
}

// Health handles GET /health. Unauthenticated, suitable for liveness probes.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	statusCode := http.StatusOK

	if err := h.db.HealthCheck(); err != nil {
		h.logger.Error("Database health check failed", "error", err)
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, statusCode, map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
