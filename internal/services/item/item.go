// Package item реализует операции над товарами: просмотр, создание,
// изменение, удаление и работу с изображением.
package item

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/marketplace/internal/filestore"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/params"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/services/access"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

// ItemRepository доступ к товарам в хранилище
type ItemRepository interface {
	CreateItem(ctx context.Context, it models.Item) (int64, error)
	ItemByID(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context, f models.ItemFilter) ([]models.Item, error)
	UpdateItem(ctx context.Context, id int64, f models.ItemFields, updatedAt int64) error
	DeleteItem(ctx context.Context, id int64) error
}

// Validator проверяет данные товара
type Validator interface {
	ItemCreate(in models.ItemInput) (models.ItemFields, []apperr.FieldError)
	ItemUpdate(in models.ItemInput) (models.ItemFields, []apperr.FieldError)
}

// ImageGuard проверяет и привязывает изображения
type ImageGuard interface {
	Attach(ctx context.Context, p models.Principal, rawID string, f filestore.File) (*models.Item, error)
	Detach(ctx context.Context, p models.Principal, rawID string) error
	MaxSize() int64
}

// Service операции над товарами
type Service struct {
	items     ItemRepository
	validator Validator
	files     filestore.Store
	guard     ImageGuard
	log       *slog.Logger
	sortable  map[string]struct{}
	now       func() time.Time
}

// NewService создаёт Service
func NewService(items ItemRepository, validator Validator, files filestore.Store, guard ImageGuard, log *slog.Logger) *Service {
	return &Service{
		items:     items,
		validator: validator,
		files:     files,
		guard:     guard,
		log:       log,
		sortable:  map[string]struct{}{"price": {}, "created_at": {}},
		now:       time.Now,
	}
}

// List возвращает товары по фильтру. Неизвестное поле сортировки заменяется на created_at,
// отсутствующее направление означает desc, любое другое кроме desc означает asc.
func (s *Service) List(ctx context.Context, f models.ItemFilter) ([]models.ItemView, error) {
	if _, ok := s.sortable[f.OrderBy]; !ok {
		f.OrderBy = "created_at"
	}
	switch f.OrderType {
	case "", models.OrderDesc:
		f.OrderType = models.OrderDesc
	default:
		f.OrderType = models.OrderAsc
	}

	items, err := s.items.ListItems(ctx, f)
	if err != nil {
		return nil, apperr.NewInternal("failed to list items", err)
	}
	out := make([]models.ItemView, 0, len(items))
	for i := range items {
		out = append(out, items[i].View())
	}
	return out, nil
}

// Get возвращает товар по id из пути
func (s *Service) Get(ctx context.Context, rawID string) (models.ItemView, error) {
	it, err := s.find(ctx, rawID)
	if err != nil {
		return models.ItemView{}, err
	}
	return it.View(), nil
}

// Create создаёт товар от имени пользователя p
func (s *Service) Create(ctx context.Context, p models.Principal, in models.ItemInput) (models.ItemView, error) {
	const op = "services.item.Create"
	log := sl.ForRequest(ctx, s.log, op)

	fields, errs := s.validator.ItemCreate(in)
	if len(errs) > 0 {
		return models.ItemView{}, apperr.NewValidation(errs...)
	}

	now := s.now().UnixMilli()
	id, err := s.items.CreateItem(ctx, models.Item{
		Title:     *fields.Title,
		Price:     *fields.Price,
		UserID:    p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return models.ItemView{}, apperr.NewInternal("failed to create item", err)
	}
	log.Info("item created", slog.Int64("item_id", id), slog.Int64("user_id", p.ID))

	it, err := s.load(ctx, id)
	if err != nil {
		return models.ItemView{}, err
	}
	return it.View(), nil
}

// Update изменяет товар. Без валидных полей запись не выполняется.
func (s *Service) Update(ctx context.Context, p models.Principal, rawID string, in models.ItemInput) (models.ItemView, error) {
	const op = "services.item.Update"
	log := sl.ForRequest(ctx, s.log, op)

	it, err := s.find(ctx, rawID)
	if err != nil {
		return models.ItemView{}, err
	}
	if err := access.CheckOwner(p, it.UserID); err != nil {
		return models.ItemView{}, err
	}

	fields, errs := s.validator.ItemUpdate(in)
	if len(errs) > 0 {
		return models.ItemView{}, apperr.NewValidation(errs...)
	}
	if fields.Empty() {
		return it.View(), nil
	}

	if err := s.items.UpdateItem(ctx, it.ID, fields, s.now().UnixMilli()); err != nil {
		return models.ItemView{}, s.storeErr("failed to update item", err)
	}
	log.Info("item updated", slog.Int64("item_id", it.ID))

	it, err = s.load(ctx, it.ID)
	if err != nil {
		return models.ItemView{}, err
	}
	return it.View(), nil
}

// Remove удаляет товар вместе с его изображением
func (s *Service) Remove(ctx context.Context, p models.Principal, rawID string) error {
	const op = "services.item.Remove"
	log := sl.ForRequest(ctx, s.log, op)

	it, err := s.find(ctx, rawID)
	if err != nil {
		return err
	}
	if err := access.CheckOwner(p, it.UserID); err != nil {
		return err
	}

	if err := s.items.DeleteItem(ctx, it.ID); err != nil {
		return s.storeErr("failed to delete item", err)
	}
	if it.Image != nil {
		if err := s.files.Remove(ctx, *it.Image); err != nil {
			log.Error("failed to remove item image", slog.String("file", *it.Image), sl.Err(err))
		}
	}
	log.Info("item removed", slog.Int64("item_id", it.ID))
	return nil
}

// UploadImage сохраняет файл и передаёт его на проверку.
// В хранилище попадает не больше MaxSize()+1 байт, этого достаточно, чтобы отклонить большой файл.
func (s *Service) UploadImage(ctx context.Context, p models.Principal, rawID, originalName string, r io.Reader) (models.ItemView, error) {
	f, err := s.files.Save(ctx, originalName, io.LimitReader(r, s.guard.MaxSize()+1))
	if err != nil {
		return models.ItemView{}, apperr.NewInternal("failed to store file", err)
	}
	it, err := s.guard.Attach(ctx, p, rawID, f)
	if err != nil {
		return models.ItemView{}, err
	}
	return it.View(), nil
}

// RemoveImage удаляет изображение товара
func (s *Service) RemoveImage(ctx context.Context, p models.Principal, rawID string) error {
	return s.guard.Detach(ctx, p, rawID)
}

// OpenImage открывает сохранённое изображение для отдачи клиенту
func (s *Service) OpenImage(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.files.Open(ctx, name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, apperr.NewNotFound()
		}
		return nil, apperr.NewInternal("failed to open image", err)
	}
	return rc, nil
}

func (s *Service) find(ctx context.Context, rawID string) (*models.Item, error) {
	id, err := params.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id int64) (*models.Item, error) {
	it, err := s.items.ItemByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("failed to load item", err)
	}
	return it, nil
}

func (s *Service) storeErr(msg string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound()
	}
	return apperr.NewInternal(msg, err)
}
