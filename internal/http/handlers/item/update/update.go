// Package update реализует HTTP-обработчик изменения товара.
//
// Изменять товар может только его владелец. Поля, которых нет в запросе, не меняются.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/http/request"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает изменение товара
type Service interface {
	Update(ctx context.Context, p models.Principal, rawID string, in models.ItemInput) (models.ItemView, error)
}

// Handler обрабатывает PUT /api/v1/item/{id}
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить товар
// @Tags Items
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "ID товара"
// @Param request body models.ItemInput true "Изменяемые поля"
// @Success 200 {object} models.ItemView
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 "Нет токена"
// @Failure 403 "Товар принадлежит другому пользователю"
// @Failure 404 "Не найден"
// @Failure 422 {array} apperr.FieldError "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/item/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.update"
	log := sl.ForRequest(r.Context(), h.log, op)

	p, err := middlewarectx.RequirePrincipal(r.Context())
	if err != nil {
		response.Error(w, r, log, err)
		return
	}

	var req models.ItemInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, log, err)
		return
	}

	res, err := h.service.Update(r.Context(), p, chi.URLParam(r, "id"), req)
	response.Render(w, r, log, res, err)
}
