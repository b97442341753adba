// Package updateme реализует HTTP-обработчик изменения текущего пользователя.
//
// Смена пароля выполняется, если передан current_password.
package updateme

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

// Service описывает изменение текущего пользователя
type Service interface {
	UpdateCurrent(ctx context.Context, p models.Principal, in models.UpdateUserInput) (models.UserView, error)
}

// Handler обрабатывает PUT /api/v1/me
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить текущего пользователя
// @Tags Users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param request body models.UpdateUserInput true "Изменяемые поля"
// @Success 200 {object} models.UserView
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 "Нет токена"
// @Failure 422 {array} apperr.FieldError "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/me [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updateme"
	log := sl.ForRequest(r.Context(), h.log, op)

	p, err := middlewarectx.RequirePrincipal(r.Context())
	if err != nil {
		response.Error(w, r, log, err)
		return
	}

	var req models.UpdateUserInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, log, err)
		return
	}

	res, err := h.service.UpdateCurrent(r.Context(), p, req)
	response.Render(w, r, log, res, err)
}
