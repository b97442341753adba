// Package create реализует HTTP-обработчик создания товара.
//
// Владельцем товара становится пользователь из контекста запроса.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/http/request"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает создание товара
type Service interface {
	Create(ctx context.Context, p models.Principal, in models.ItemInput) (models.ItemView, error)
}

// Handler обрабатывает POST /api/v1/item
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать товар
// @Tags Items
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param request body models.ItemInput true "Название и цена"
// @Success 200 {object} models.ItemView
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 "Нет токена"
// @Failure 422 {array} apperr.FieldError "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/item [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.create"
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

	res, err := h.service.Create(r.Context(), p, req)
	response.Render(w, r, log, res, err)
}
