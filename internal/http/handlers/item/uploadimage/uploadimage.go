// Package uploadimage реализует HTTP-обработчик загрузки изображения товара.
//
// Файл приходит в multipart-поле "file" и читается потоком, без временных файлов.
// Проверки размера, типа и владельца выполняет сервис, отклонённый файл удаляется.
package uploadimage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// FormField имя multipart-поля с файлом
const FormField = "file"

// MsgFileRequired сообщение при отсутствии файла
const MsgFileRequired = "File is required"

// Service описывает загрузку изображения
type Service interface {
	UploadImage(ctx context.Context, p models.Principal, rawID, originalName string, r io.Reader) (models.ItemView, error)
}

// Handler обрабатывает POST /api/v1/item/{id}/image
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Загрузить изображение товара
// @Tags Items
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "ID товара"
// @Param file formData file true "Изображение"
// @Success 200 {object} models.ItemView
// @Failure 401 "Нет токена"
// @Failure 403 "Товар принадлежит другому пользователю"
// @Failure 404 "Не найден"
// @Failure 422 {array} apperr.FieldError "Файл слишком большой или неверного типа"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/item/{id}/image [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.uploadimage"
	log := sl.ForRequest(r.Context(), h.log, op)

	p, err := middlewarectx.RequirePrincipal(r.Context())
	if err != nil {
		response.Error(w, r, log, err)
		return
	}

	part, err := filePart(r)
	if err != nil {
		response.Error(w, r, log, err)
		return
	}
	defer part.Close()

	res, err := h.service.UploadImage(r.Context(), p, chi.URLParam(r, "id"), part.FileName(), part)
	response.Render(w, r, log, res, err)
}

// filePart находит часть с файлом. Предыдущие части пропускаются без буферизации.
func filePart(r *http.Request) (*multipart.Part, error) {
	missing := apperr.NewValidation(apperr.FieldError{Field: FormField, Message: MsgFileRequired})

	mr, err := r.MultipartReader()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, missing
		}
		return nil, apperr.WithStatus(http.StatusBadRequest, "failed to parse multipart form", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, missing
		}
		if err != nil {
			return nil, apperr.WithStatus(http.StatusBadRequest, "failed to parse multipart form", err)
		}
		if part.FormName() == FormField && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}
