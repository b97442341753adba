// Package request разбирает тело HTTP-запроса.
package request

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
)

// DecodeJSON читает JSON из тела запроса в v. Пустое тело оставляет v нетронутым.
// Некорректный JSON даёт ошибку со статусом 400.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.WithStatus(http.StatusBadRequest, "failed to decode request", err)
	}
	return nil
}
