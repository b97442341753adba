// Package marketplace собирает HTTP-приложение: хранилища, сервисы и маршруты.
package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/marketplace/internal/config"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/health"
	itemcreate "github.com/magabrotheeeer/marketplace/internal/http/handlers/item/create"
	itemlist "github.com/magabrotheeeer/marketplace/internal/http/handlers/item/list"
	itemread "github.com/magabrotheeeer/marketplace/internal/http/handlers/item/read"
	itemremove "github.com/magabrotheeeer/marketplace/internal/http/handlers/item/remove"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/item/removeimage"
	itemupdate "github.com/magabrotheeeer/marketplace/internal/http/handlers/item/update"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/item/uploadimage"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/uploads"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/user/me"
	userlist "github.com/magabrotheeeer/marketplace/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/marketplace/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/marketplace/internal/http/handlers/user/updateme"
	"github.com/magabrotheeeer/marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketplace/internal/metrics"
	authservice "github.com/magabrotheeeer/marketplace/internal/services/auth"
	itemservice "github.com/magabrotheeeer/marketplace/internal/services/item"
	userservice "github.com/magabrotheeeer/marketplace/internal/services/user"
)

// Services сервисы, которые обслуживают маршруты
type Services struct {
	Auth   *authservice.AuthService
	Users  *userservice.Service
	Items  *itemservice.Service
	Health health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         300,
		}),
		metrics.HTTPMetricsMiddleware,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit.RPS, cfg.RateLimit.Burst)).
			Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/item", itemlist.New(logger, s.Items).ServeHTTP)
		r.Get("/item/{id}", itemread.New(logger, s.Items).ServeHTTP)

		// Группа с проверкой токена
		r.Route("/v1", func(r chi.Router) {
			r.Use(middlewarectx.TokenMiddleware(s.Auth, logger))

			r.Get("/me", me.New(logger, s.Users).ServeHTTP)
			r.Put("/me", updateme.New(logger, s.Users).ServeHTTP)
			r.Get("/user", userlist.New(logger, s.Users).ServeHTTP)
			r.Get("/user/{id}", userread.New(logger, s.Users).ServeHTTP)

			r.Post("/item", itemcreate.New(logger, s.Items).ServeHTTP)
			r.Put("/item/{id}", itemupdate.New(logger, s.Items).ServeHTTP)
			r.Delete("/item/{id}", itemremove.New(logger, s.Items).ServeHTTP)
			r.Post("/item/{id}/image", uploadimage.New(logger, s.Items).ServeHTTP)
			r.Delete("/item/{id}/image", removeimage.New(logger, s.Items).ServeHTTP)
		})
	})

	r.Get("/uploads/{name}", uploads.New(logger, s.Items).ServeHTTP)
	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
