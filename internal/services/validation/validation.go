// Package validation проверяет входные данные пользователей и товаров.
//
// Каждая проверка поля независима: ошибки накапливаются, а прошедшие
// проверку поля попадают в набор для записи.
package validation

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// Сообщения об ошибках полей
const (
	MsgWrongEmail       = "Wrong email"
	MsgEmailInUse       = "Email already in use"
	MsgWrongPassword    = "Wrong password"
	MsgWrongName        = "Name should contain at least 3 characters"
	MsgWrongPhone       = "Wrong phone"
	MsgWrongNewPassword = "Wrong new password"
	MsgWrongCurrentPass = "Wrong current password"
	MsgSamePassword     = "New password should not be same as current password"
	MsgTitleRequired    = "Title is required"
	MsgWrongTitle       = "Title should contain at least 3 characters"
	MsgPriceRequired    = "Price is required"
	MsgWrongPrice       = "Wrong price"
	MsgWrongCredentials = "Wrong email or password"
)

// Теги валидатора для полей
const (
	tagEmail    = "user_email"
	tagPassword = "user_password"
	tagName     = "user_name"
	tagPhone    = "user_phone"
	tagTitle    = "item_title"
	tagPrice    = "item_price"
)

var (
	emailRegex    = regexp.MustCompile(`^\s*[\w\-+]+(\.[\w\-+]+)*@[\w\-+]+\.[\w\-+]+(\.[\w\-+]+)*\s*$`)
	passwordRegex = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	letterRegex   = regexp.MustCompile(`[A-Za-z]`)
	digitRegex    = regexp.MustCompile(`\d`)
	nameRegex     = regexp.MustCompile(`^[a-zA-Z]{3,}([\sa-zA-Z]*)$`)
	phoneRegex    = regexp.MustCompile(`^\+380\d{9}$`)
	titleRegex    = regexp.MustCompile(`^[a-zA-Z0-9]{3,}([\sa-zA-Z0-9]*)$`)
	decimalRegex  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// UserLookup доступ к хранилищу, нужный для проверок уникальности и текущего пароля
type UserLookup interface {
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Validator проверяет поля пользователей и товаров
type Validator struct {
	validate *validator.Validate
	users    UserLookup
}

// New создаёт валидатор и регистрирует проверки полей
func New(users UserLookup) *Validator {
	v := validator.New()
	mustRegister(v, tagEmail, matchString(emailRegex))
	mustRegister(v, tagPassword, func(fl validator.FieldLevel) bool { return validPassword(fl.Field().String()) })
	mustRegister(v, tagName, matchString(nameRegex))
	mustRegister(v, tagPhone, matchString(phoneRegex))
	mustRegister(v, tagTitle, matchString(titleRegex))
	mustRegister(v, tagPrice, func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
	})
	return &Validator{validate: v, users: users}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func validPassword(s string) bool {
	return passwordRegex.MatchString(s) && letterRegex.MatchString(s) && digitRegex.MatchString(s)
}

func (v *Validator) ok(value any, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

type collector struct {
	errs []apperr.FieldError
}

func (c *collector) add(field, msg string) {
	c.errs = append(c.errs, apperr.FieldError{Field: field, Message: msg})
}

// UserCreate проверяет данные регистрации
func (v *Validator) UserCreate(ctx context.Context, in models.RegisterInput) (models.UserFields, []apperr.FieldError, error) {
	var (
		out models.UserFields
		c   collector
	)

	if v.ok(in.Email, tagEmail) {
		taken, err := v.users.EmailTaken(ctx, in.Email.String(), 0)
		if err != nil {
			return out, nil, err
		}
		if taken {
			c.add("email", MsgEmailInUse)
		} else {
			out.Email = ptr(in.Email)
		}
	} else {
		c.add("email", MsgWrongEmail)
	}

	if in.Phone != "" {
		if v.ok(in.Phone, tagPhone) {
			out.Phone = ptr(in.Phone)
		} else {
			c.add("phone", MsgWrongPhone)
		}
	}

	if v.ok(in.Password, tagPassword) {
		out.Password = ptr(in.Password)
	} else {
		c.add("password", MsgWrongPassword)
	}

	if v.ok(in.Name, tagName) {
		out.Name = ptr(in.Name)
	} else {
		c.add("name", MsgWrongName)
	}

	return out, c.errs, nil
}

// UserUpdate проверяет изменения профиля пользователя id.
// Смена пароля проверяется, когда передан current_password.
func (v *Validator) UserUpdate(ctx context.Context, id int64, in models.UpdateUserInput) (models.UserFields, []apperr.FieldError, error) {
	var (
		out models.UserFields
		c   collector
	)

	if in.Phone != "" {
		if v.ok(in.Phone, tagPhone) {
			out.Phone = ptr(in.Phone)
		} else {
			c.add("phone", MsgWrongPhone)
		}
	}

	if in.Name != "" {
		if v.ok(in.Name, tagName) {
			out.Name = ptr(in.Name)
		} else {
			c.add("name", MsgWrongName)
		}
	}

	if in.Email != "" {
		if !v.ok(in.Email, tagEmail) {
			c.add("email", MsgWrongEmail)
		} else {
			taken, err := v.users.EmailTaken(ctx, in.Email.String(), id)
			if err != nil {
				return out, nil, err
			}
			if taken {
				c.add("email", MsgEmailInUse)
			} else {
				out.Email = ptr(in.Email)
			}
		}
	}

	if in.CurrentPassword != "" {
		valid := true
		if !v.ok(in.NewPassword, tagPassword) {
			c.add("new_password", MsgWrongNewPassword)
			valid = false
		}

		stored, err := v.users.UserByID(ctx, id)
		if err != nil {
			return out, nil, err
		}
		if in.CurrentPassword.String() != stored.Password {
			c.add("current_password", MsgWrongCurrentPass)
			valid = false
		}

		if in.NewPassword == in.CurrentPassword {
			c.add("new_password", MsgSamePassword)
			valid = false
		}

		if valid {
			out.Password = ptr(in.NewPassword)
		}
	}

	return out, c.errs, nil
}

// ItemCreate проверяет данные нового товара
func (v *Validator) ItemCreate(in models.ItemInput) (models.ItemFields, []apperr.FieldError) {
	var (
		out models.ItemFields
		c   collector
	)

	if in.Title == "" {
		c.add("title", MsgTitleRequired)
	} else if v.ok(in.Title, tagTitle) {
		out.Title = ptr(in.Title)
	} else {
		c.add("title", MsgWrongTitle)
	}

	// Обязательность и формат цены проверяются независимо:
	// отсутствующая цена получает обе ошибки.
	if !pricePresent(in.Price) {
		c.add("price", MsgPriceRequired)
	}
	if price, ok := v.price(in.Price); ok {
		out.Price = &price
	} else {
		c.add("price", MsgWrongPrice)
	}

	return out, c.errs
}

// ItemUpdate проверяет изменения товара; отсутствующие поля пропускаются
func (v *Validator) ItemUpdate(in models.ItemInput) (models.ItemFields, []apperr.FieldError) {
	var (
		out models.ItemFields
		c   collector
	)

	if in.Title != "" {
		if v.ok(in.Title, tagTitle) {
			out.Title = ptr(in.Title)
		} else {
			c.add("title", MsgWrongTitle)
		}
	}

	if pricePresent(in.Price) {
		if price, ok := v.price(in.Price); ok {
			out.Price = &price
		} else {
			c.add("price", MsgWrongPrice)
		}
	}

	return out, c.errs
}

func pricePresent(raw any) bool {
	switch p := raw.(type) {
	case nil:
		return false
	case string:
		return p != ""
	default:
		return true
	}
}

// price приводит число или числовую строку к float64 и проверяет его
func (v *Validator) price(raw any) (float64, bool) {
	var f float64
	switch p := raw.(type) {
	case float64:
		f = p
	case string:
		p = strings.TrimSpace(p)
		if !decimalRegex.MatchString(p) {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, v.ok(f, tagPrice)
}

func ptr[T ~string](s T) *string {
	v := string(s)
	return &v
}
