// Package read реализует HTTP-обработчик получения пользователя по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает чтение пользователя. rawID проверяется сервисом.
type Service interface {
	Get(ctx context.Context, rawID string) (models.UserView, error)
}

// Handler обрабатывает GET /api/v1/user/{id}
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователь по ID
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.UserView
// @Failure 401 "Нет токена"
// @Failure 404 "Не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/user/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
	log := sl.ForRequest(r.Context(), h.log, op)

	res, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	response.Render(w, r, log, res, err)
}
