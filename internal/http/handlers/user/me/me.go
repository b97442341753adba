// Package me реализует HTTP-обработчик чтения текущего пользователя.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Service описывает чтение текущего пользователя
type Service interface {
	Current(ctx context.Context, p models.Principal) (models.UserView, error)
}

// Handler обрабатывает GET /api/v1/me
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} models.UserView
// @Failure 401 "Нет токена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"
	log := sl.ForRequest(r.Context(), h.log, op)

	p, err := middlewarectx.RequirePrincipal(r.Context())
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	res, err := h.service.Current(r.Context(), p)
	response.Render(w, r, log, res, err)
}
