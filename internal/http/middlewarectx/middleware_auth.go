// Package middlewarectx содержит HTTP middleware сервиса.
//
// TokenMiddleware проверяет токен из заголовка Authorization и кладёт
// пользователя в контекст запроса. RateLimitMiddleware ограничивает частоту запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/marketplace/internal/http/response"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ для пользователя в контексте
const User Key = "principal"

// Service описывает сервис, который находит пользователя по токену.
type Service interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

// TokenMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
//
// Токен передаётся как есть, префикс "Bearer " допускается.
// Без токена или с неизвестным токеном возвращает 401 с пустым телом.
func TokenMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.TokenMiddleware"
			log := sl.ForRequest(r.Context(), log, op)

			token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			if token == "" {
				log.Info("missing authorization header")
				response.Error(w, r, log, apperr.NewUnauthorized())
				return
			}

			p, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				log.Info("token rejected", sl.Err(err))
				response.Error(w, r, log, err)
				return
			}
			ctx := context.WithValue(r.Context(), User, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom достаёт пользователя из контекста
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(User).(models.Principal)
	return p, ok
}

// WithPrincipal кладёт пользователя в контекст
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, User, p)
}

// RequirePrincipal как PrincipalFrom, но без пользователя возвращает Unauthorized
func RequirePrincipal(ctx context.Context) (models.Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return models.Principal{}, apperr.NewUnauthorized()
	}
	return p, nil
}
