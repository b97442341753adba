// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/request"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает регистрацию пользователя
type Service interface {
	Register(ctx context.Context, in models.RegisterInput) (models.TokenResponse, error)
}

// Handler обрабатывает POST /api/register
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя и возвращает его токен
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.RegisterInput true "Данные пользователя"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {array} apperr.FieldError "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := sl.ForRequest(r.Context(), h.log, op)

	var req models.RegisterInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, log, err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Info("registration rejected", sl.Err(err))
		response.Error(w, r, log, err)
		return
	}
	response.Render(w, r, log, res, nil)
}
