package marketplace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/marketplace/internal/cache"
	"github.com/magabrotheeeer/marketplace/internal/config"
	"github.com/magabrotheeeer/marketplace/internal/filestore"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/migrations"
	authservice "github.com/magabrotheeeer/marketplace/internal/services/auth"
	itemservice "github.com/magabrotheeeer/marketplace/internal/services/item"
	"github.com/magabrotheeeer/marketplace/internal/services/upload"
	userservice "github.com/magabrotheeeer/marketplace/internal/services/user"
	"github.com/magabrotheeeer/marketplace/internal/services/validation"
	"github.com/magabrotheeeer/marketplace/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер со всеми зависимостями
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *postgresql.Storage
	cache  cache.Cache
}

// New подключается к хранилищам, применяет миграции и собирает маршруты
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgresql.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.SQLDB()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err = migrations.Run(sqlDB); err != nil {
		db.Close()
		return nil, err
	}

	principalCache, err := cache.New(ctx, cfg.RedisConnection)
	if err != nil {
		db.Close()
		return nil, err
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		db.Close()
		_ = principalCache.Close()
		return nil, err
	}

	validator := validation.New(db)
	guard := upload.New(logger, files, db, cfg.File.MaxSize, cfg.File.Types)
	services := Services{
		Auth:   authservice.NewAuthService(db, validator, principalCache, cfg.PrincipalTTL, logger),
		Users:  userservice.NewService(db, validator, principalCache, logger),
		Items:  itemservice.NewService(db, validator, files, guard, logger),
		Health: db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  principalCache,
	}, nil
}

func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.File.Storage {
	case config.FileStorageMinio:
		m, err := filestore.NewMinio(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.FileStorageLocal:
		l, err := filestore.NewLocal(cfg.File.Uploads)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown file storage %q", cfg.File.Storage)
	}
}

// Run запускает сервер и останавливает его при отмене ctx
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	a.db.Close()
}
