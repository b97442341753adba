// Package list реализует HTTP-обработчик поиска пользователей по имени и email.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает поиск пользователей
type Service interface {
	List(ctx context.Context, f models.UserFilter) ([]models.UserView, error)
}

// Handler обрабатывает GET /api/v1/user
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Частичное совпадение по name и email
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Param name query string false "Часть имени"
// @Param email query string false "Часть email"
// @Success 200 {array} models.UserView
// @Failure 401 "Нет токена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := sl.ForRequest(r.Context(), h.log, op)

	q := r.URL.Query()
	res, err := h.service.List(r.Context(), models.UserFilter{
		Name:  q.Get("name"),
		Email: q.Get("email"),
	})
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	log.Debug("users listed", slog.Int("count", len(res)))
	response.Render(w, r, log, res, nil)
}
