// Package user реализует операции над профилями пользователей.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/marketplace/internal/cache"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/params"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/services/auth"
	"github.com/magabrotheeeer/marketplace/internal/services/validation"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

// UserRepository доступ к пользователям в хранилище
type UserRepository interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, f models.UserFields, updatedAt int64) error
	ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, error)
}

// Validator проверяет изменения профиля
type Validator interface {
	UserUpdate(ctx context.Context, id int64, in models.UpdateUserInput) (models.UserFields, []apperr.FieldError, error)
}

// Service операции над пользователями
type Service struct {
	users     UserRepository
	validator Validator
	cache     cache.Cache
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт Service
func NewService(users UserRepository, validator Validator, c cache.Cache, log *slog.Logger) *Service {
	return &Service{
		users:     users,
		validator: validator,
		cache:     c,
		log:       log,
		now:       time.Now,
	}
}

// Current возвращает профиль аутентифицированного пользователя
func (s *Service) Current(ctx context.Context, p models.Principal) (models.UserView, error) {
	u, err := s.load(ctx, p.ID)
	if err != nil {
		return models.UserView{}, err
	}
	return u.View(), nil
}

// UpdateCurrent изменяет профиль аутентифицированного пользователя
func (s *Service) UpdateCurrent(ctx context.Context, p models.Principal, in models.UpdateUserInput) (models.UserView, error) {
	const op = "services.user.UpdateCurrent"
	log := sl.ForRequest(ctx, s.log, op)

	fields, errs, err := s.validator.UserUpdate(ctx, p.ID, in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserView{}, apperr.NewUnauthorized()
		}
		return models.UserView{}, apperr.NewInternal("failed to validate user", err)
	}
	if len(errs) > 0 {
		return models.UserView{}, apperr.NewValidation(errs...)
	}

	if !fields.Empty() {
		if err := s.users.UpdateUser(ctx, p.ID, fields, s.now().UnixMilli()); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return models.UserView{}, apperr.NewValidation(apperr.FieldError{Field: "email", Message: validation.MsgEmailInUse})
			}
			return models.UserView{}, apperr.NewInternal("failed to update user", err)
		}
		log.Info("user updated", slog.Int64("user_id", p.ID))
	}

	u, err := s.load(ctx, p.ID)
	if err != nil {
		return models.UserView{}, err
	}
	if !fields.Empty() {
		if err := s.cache.Invalidate(ctx, auth.PrincipalKey(u.Token)); err != nil {
			log.Warn("failed to invalidate principal cache", sl.Err(err))
		}
	}
	return u.View(), nil
}

// List возвращает пользователей по фильтру
func (s *Service) List(ctx context.Context, f models.UserFilter) ([]models.UserView, error) {
	users, err := s.users.ListUsers(ctx, f)
	if err != nil {
		return nil, apperr.NewInternal("failed to list users", err)
	}
	out := make([]models.UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out, nil
}

// Get возвращает пользователя по id из пути
func (s *Service) Get(ctx context.Context, rawID string) (models.UserView, error) {
	id, err := params.ParseID(rawID)
	if err != nil {
		return models.UserView{}, err
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}
	return u.View(), nil
}

func (s *Service) load(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NewNotFound()
		}
		return nil, apperr.NewInternal("failed to load user", err)
	}
	return u, nil
}
