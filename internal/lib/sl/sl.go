// Package sl содержит вспомогательные функции для работы с логгером slog.
package sl

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/middleware"
)

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// ForRequest возвращает логгер с полями op и request_id текущего запроса.
func ForRequest(ctx context.Context, log *slog.Logger, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(ctx)),
	)
}
