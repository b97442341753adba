// Package health реализует проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
)

// Pinger проверяет доступность зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /health
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый Handler
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	log := sl.ForRequest(r.Context(), h.log, op)

	if err := h.db.Ping(r.Context()); err != nil {
		response.Error(w, r, log, apperr.WithStatus(http.StatusServiceUnavailable, "storage unavailable", err))
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
