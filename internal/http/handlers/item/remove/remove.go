// Package remove реализует HTTP-обработчик удаления товара владельцем.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает удаление товара
type Service interface {
	Remove(ctx context.Context, p models.Principal, rawID string) error
}

// Handler обрабатывает DELETE /api/v1/item/{id}
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить товар
// @Tags Items
// @Security ApiKeyAuth
// @Param id path int true "ID товара"
// @Success 200 "Пустое тело"
// @Failure 401 "Нет токена"
// @Failure 403 "Товар принадлежит другому пользователю"
// @Failure 404 "Не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/item/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.remove"
	log := sl.ForRequest(r.Context(), h.log, op)

	p, err := middlewarectx.RequirePrincipal(r.Context())
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	err = h.service.Remove(r.Context(), p, chi.URLParam(r, "id"))
	response.Render(w, r, log, nil, err)
}
