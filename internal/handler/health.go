package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health обрабатывает GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
