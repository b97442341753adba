// Package list реализует HTTP-обработчик списка товаров с фильтрами и сортировкой.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/params"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает поиск товаров
type Service interface {
	List(ctx context.Context, f models.ItemFilter) ([]models.ItemView, error)
}

// Handler обрабатывает GET /api/item
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Фильтр по части названия и владельцу, сортировка по price или created_at
// @Tags Items
// @Produce  json
// @Param title query string false "Часть названия"
// @Param user_id query int false "ID владельца"
// @Param order_by query string false "price или created_at"
// @Param order_type query string false "asc или desc, по умолчанию desc"
// @Success 200 {array} models.ItemView
// @Failure 500 {object} response.ErrorResponse
// @Router /api/item [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.list"
	log := sl.ForRequest(r.Context(), h.log, op)

	q := r.URL.Query()
	f := models.ItemFilter{
		Title:     q.Get("title"),
		UserID:    params.OptionalInt64(q.Get("user_id")),
		OrderBy:   q.Get("order_by"),
		OrderType: q.Get("order_type"),
	}

	res, err := h.service.List(r.Context(), f)
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	log.Debug("items listed", slog.Int("count", len(res)))
	response.Render(w, r, log, res, nil)
}
