// Package auth отвечает за регистрацию, вход и проверку токена доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/marketplace/internal/cache"
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/marketplace/internal/metrics"
	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/services/validation"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

// UserRepository описывает доступ к пользователям в хранилище.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его id.
	CreateUser(ctx context.Context, u models.User) (int64, error)
	// UserByToken возвращает пользователя по токену.
	UserByToken(ctx context.Context, token string) (*models.User, error)
	// UserByCredentials возвращает пользователя по email и паролю.
	UserByCredentials(ctx context.Context, email, password string) (*models.User, error)
}

// Validator проверяет данные регистрации.
type Validator interface {
	UserCreate(ctx context.Context, in models.RegisterInput) (models.UserFields, []apperr.FieldError, error)
}

// PrincipalKey ключ кэша для пользователя с токеном token
func PrincipalKey(token string) string {
	return "principal:" + token
}

// AuthService реализует регистрацию, вход и аутентификацию по токену.
type AuthService struct {
	users     UserRepository
	validator Validator
	cache     cache.Cache
	ttl       time.Duration
	log       *slog.Logger
	now       func() time.Time
	newToken  func() (uuid.UUID, error)
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, validator Validator, c cache.Cache, ttl time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		validator: validator,
		cache:     c,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		newToken:  uuid.NewUUID,
	}
}

// Register создаёт пользователя и возвращает выданный ему токен.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.TokenResponse, error) {
	const op = "services.auth.Register"
	log := sl.ForRequest(ctx, s.log, op)

	fields, errs, err := s.validator.UserCreate(ctx, in)
	if err != nil {
		return models.TokenResponse{}, apperr.NewInternal("failed to validate user", err)
	}
	if len(errs) > 0 {
		return models.TokenResponse{}, apperr.NewValidation(errs...)
	}

	token, err := s.newToken()
	if err != nil {
		return models.TokenResponse{}, apperr.NewInternal("failed to generate token", err)
	}
	now := s.now().UnixMilli()
	u := models.User{
		Name:      *fields.Name,
		Email:     *fields.Email,
		Phone:     fields.Phone,
		Password:  *fields.Password,
		Token:     token.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.users.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.TokenResponse{}, apperr.NewValidation(apperr.FieldError{Field: "email", Message: validation.MsgEmailInUse})
		}
		return models.TokenResponse{}, apperr.NewInternal("failed to create user", err)
	}

	log.Info("user registered", slog.Int64("user_id", id))
	return models.TokenResponse{Token: u.Token}, nil
}

// Login возвращает токен пользователя с указанными email и паролем.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (models.TokenResponse, error) {
	const op = "services.auth.Login"
	log := sl.ForRequest(ctx, s.log, op)

	u, err := s.users.UserByCredentials(ctx, in.Email.String(), in.Password.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("wrong credentials")
			return models.TokenResponse{}, apperr.NewValidation(
				apperr.FieldError{Field: "email", Message: validation.MsgWrongCredentials},
				apperr.FieldError{Field: "password", Message: validation.MsgWrongCredentials},
			)
		}
		return models.TokenResponse{}, apperr.NewInternal("failed to login", err)
	}

	log.Info("login success", slog.Int64("user_id", u.ID))
	return models.TokenResponse{Token: u.Token}, nil
}

// Authenticate возвращает пользователя, которому принадлежит токен.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	const op = "services.auth.Authenticate"
	log := sl.ForRequest(ctx, s.log, op)

	if token == "" {
		return models.Principal{}, apperr.NewUnauthorized()
	}

	var p models.Principal
	found, err := s.cache.Get(ctx, PrincipalKey(token), &p)
	if err != nil {
		log.Warn("cache get failed", sl.Err(err))
	}
	metrics.ObserveCacheLookup(found)
	if found {
		return p, nil
	}

	u, err := s.users.UserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Principal{}, apperr.NewUnauthorized()
		}
		return models.Principal{}, apperr.NewInternal("failed to authenticate", fmt.Errorf("%s: %w", op, err))
	}

	p = u.Principal()
	if err := s.cache.Set(ctx, PrincipalKey(token), p, s.ttl); err != nil {
		log.Warn("cache set failed", sl.Err(err))
	}
	return p, nil
}
