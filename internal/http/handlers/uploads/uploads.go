// Package uploads отдаёт сохранённые изображения товаров.
package uploads

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
)

// Service открывает изображение по имени в хранилище
type Service interface {
	OpenImage(ctx context.Context, name string) (io.ReadCloser, error)
}

// Handler обрабатывает GET /uploads/{name}
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изображение товара
// @Tags Items
// @Produce  octet-stream
// @Param name path string true "Имя файла из поля image"
// @Success 200 {file} binary
// @Failure 404 "Не найден"
// @Router /uploads/{name} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.uploads"
	log := sl.ForRequest(r.Context(), h.log, op)

	name := chi.URLParam(r, "name")
	rc, err := h.service.OpenImage(r.Context(), name)
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, rc); err != nil {
		log.Error("failed to write image", slog.String("file", name), sl.Err(err))
	}
}
