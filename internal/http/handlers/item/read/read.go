// Package read реализует HTTP-обработчик получения товара по ID.
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

// Service описывает чтение товара
type Service interface {
	Get(ctx context.Context, rawID string) (models.ItemView, error)
}

// Handler обрабатывает GET /api/item/{id}
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Товар по ID
// @Tags Items
// @Produce  json
// @Param id path int true "ID товара"
// @Success 200 {object} models.ItemView
// @Failure 404 "Не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/item/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.read"
	log := sl.ForRequest(r.Context(), h.log, op)

	res, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	response.Render(w, r, log, res, err)
}
