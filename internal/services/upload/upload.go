// Package upload проверяет загруженное изображение товара и привязывает его к товару.
//
// Файл к этому моменту уже лежит в хранилище. Любой отказ удаляет его.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/marketplace/internal/filestore"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/params"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/metrics"
	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/services/access"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

// MsgWrongFileType сообщение для недопустимого расширения
const MsgWrongFileType = "Wrong file type"

// ItemStore операции хранилища, нужные при работе с изображением
type ItemStore interface {
	ItemByID(ctx context.Context, id int64) (*models.Item, error)
	SetItemImage(ctx context.Context, id int64, image *string, updatedAt int64) error
}

// Guard проверяет загрузки изображений
type Guard struct {
	log     *slog.Logger
	files   filestore.Store
	items   ItemStore
	maxSize int64
	types   map[string]struct{}
	now     func() time.Time
}

// New создаёт Guard. types содержит допустимые расширения, например ".png".
func New(log *slog.Logger, files filestore.Store, items ItemStore, maxSize int64, types []string) *Guard {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		allowed[t] = struct{}{}
	}
	return &Guard{
		log:     log,
		files:   files,
		items:   items,
		maxSize: maxSize,
		types:   allowed,
		now:     time.Now,
	}
}

// MaxSize возвращает предельный размер файла в байтах. Файл такого размера уже слишком большой.
func (g *Guard) MaxSize() int64 {
	return g.maxSize
}

// Attach проверяет сохранённый файл f и записывает его как изображение товара rawID.
// Старое изображение удаляется.
func (g *Guard) Attach(ctx context.Context, p models.Principal, rawID string, f filestore.File) (*models.Item, error) {
	const op = "services.upload.Attach"
	log := sl.ForRequest(ctx, g.log, op)

	if f.Size >= g.maxSize {
		return nil, g.reject(ctx, log, f, "too_big", apperr.NewValidation(apperr.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("The file '%s' is too big", f.OriginalName),
		}))
	}

	if _, ok := g.types[f.Ext]; !ok {
		return nil, g.reject(ctx, log, f, "wrong_type", apperr.NewValidation(apperr.FieldError{
			Field:   "file",
			Message: MsgWrongFileType,
		}))
	}

	id, err := params.ParseID(rawID)
	if err != nil {
		return nil, g.reject(ctx, log, f, "not_found", err)
	}

	item, err := g.items.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, g.reject(ctx, log, f, "not_found", apperr.NewNotFound())
		}
		return nil, g.reject(ctx, log, f, "internal", apperr.NewInternal("failed to load item", err))
	}

	if err := access.CheckOwner(p, item.UserID); err != nil {
		return nil, g.reject(ctx, log, f, "forbidden", err)
	}

	if item.Image != nil {
		g.removeQuietly(ctx, log, *item.Image)
	}

	if err := g.items.SetItemImage(ctx, id, &f.Name, g.now().UnixMilli()); err != nil {
		g.removeQuietly(ctx, log, f.Name)
		return nil, apperr.NewInternal("failed to save image", err)
	}
	log.Info("image attached", slog.Int64("item_id", id), slog.String("file", f.Name))

	item, err = g.items.ItemByID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternal("failed to load item", err)
	}
	return item, nil
}

// Detach удаляет изображение товара rawID
func (g *Guard) Detach(ctx context.Context, p models.Principal, rawID string) error {
	const op = "services.upload.Detach"
	log := sl.ForRequest(ctx, g.log, op)

	id, err := params.ParseID(rawID)
	if err != nil {
		return err
	}

	item, err := g.items.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound()
		}
		return apperr.NewInternal("failed to load item", err)
	}

	if err := access.CheckOwner(p, item.UserID); err != nil {
		return err
	}

	if item.Image != nil {
		g.removeQuietly(ctx, log, *item.Image)
	}

	if err := g.items.SetItemImage(ctx, id, nil, g.now().UnixMilli()); err != nil {
		return apperr.NewInternal("failed to remove image", err)
	}
	log.Info("image removed", slog.Int64("item_id", id))
	return nil
}

func (g *Guard) reject(ctx context.Context, log *slog.Logger, f filestore.File, reason string, err error) error {
	metrics.UploadRejected(reason)
	log.Info("upload rejected", slog.String("reason", reason), slog.String("file", f.Name))
	g.removeQuietly(ctx, log, f.Name)
	return err
}

// removeQuietly удаляет файл; ошибка только логируется.
// Удаление не прерывается, если клиент уже отключился.
func (g *Guard) removeQuietly(ctx context.Context, log *slog.Logger, name string) {
	if err := g.files.Remove(context.WithoutCancel(ctx), name); err != nil {
		log.Error("failed to remove file", slog.String("file", name), sl.Err(err))
	}
}
