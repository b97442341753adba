// Package response превращает результат сервиса в HTTP-ответ.
//
// Render единственное место, где apperr.Error получает статус и тело.
package response

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
)

// StatusError значение поля status в ответе с ошибкой
const StatusError = "error"

// ErrorResponse тело ответа при внутренней ошибке.
// Detail содержит идентификатор запроса.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"failed to load item"`
	Detail  string `json:"detail" example:"host/abcdef-000001"`
}

// Render пишет payload со статусом 200 или ошибку с соответствующим статусом.
// Пустой payload даёт пустое тело.
func Render(w http.ResponseWriter, r *http.Request, log *slog.Logger, payload any, err error) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	if payload == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload)
}

// Error пишет ошибку. Всё, что не apperr.Error, считается внутренней ошибкой.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.NewInternal("internal error", err)
	}

	switch e.Kind {
	case apperr.Unauthorized:
		w.WriteHeader(http.StatusUnauthorized)
	case apperr.Forbidden:
		w.WriteHeader(http.StatusForbidden)
	case apperr.NotFound:
		w.WriteHeader(http.StatusNotFound)
	case apperr.ValidationFailed:
		fields := e.Fields
		if fields == nil {
			fields = []apperr.FieldError{}
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, fields)
	default:
		status := e.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		reqID := middleware.GetReqID(r.Context())
		log.Error(e.Message,
			slog.String("request_id", reqID),
			slog.Int("status", status),
			sl.Err(e.Err),
		)
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{
			Status:  StatusError,
			Message: msg,
			Detail:  reqID,
		})
	}
}
