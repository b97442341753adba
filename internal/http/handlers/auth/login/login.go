// Package login реализует HTTP-обработчик входа по email и паролю.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/request"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает вход пользователя
type Service interface {
	Login(ctx context.Context, in models.LoginInput) (models.TokenResponse, error)
}

// Handler обрабатывает POST /api/login
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
// @Summary Авторизация пользователя
// @Description Возвращает токен пользователя по email и паролю. При неверных данных ошибка приходит на оба поля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginInput true "Учетные данные пользователя"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {array} apperr.FieldError "Неверные учетные данные"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := sl.ForRequest(r.Context(), h.log, op)

	var req models.LoginInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, log, err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Info("login rejected", sl.Err(err))
		response.Error(w, r, log, err)
		return
	}
	response.Render(w, r, log, res, nil)
}
