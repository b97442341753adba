// Package apperr описывает единый тип ошибки бизнес-логики.
//
// Сервисы возвращают *Error, транспортный слой превращает его в HTTP-ответ.
package apperr

import (
	"errors"
	"fmt"
)

// Kind тип ошибки
type Kind int

const (
	// Internal непредвиденная ошибка
	Internal Kind = iota
	// Unauthorized отсутствует или неверен токен
	Unauthorized
	// Forbidden ресурс принадлежит другому пользователю
	Forbidden
	// NotFound ресурс не найден
	NotFound
	// ValidationFailed одно или несколько полей не прошли проверку
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "internal"
	}
}

// FieldError ошибка конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error ошибка с типом. Status переопределяет HTTP-статус для Internal.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, e.Fields)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewUnauthorized ...
func NewUnauthorized() *Error { return &Error{Kind: Unauthorized} }

// NewForbidden ...
func NewForbidden() *Error { return &Error{Kind: Forbidden} }

// NewNotFound ...
func NewNotFound() *Error { return &Error{Kind: NotFound} }

// NewValidation возвращает ошибку валидации со списком полей
func NewValidation(fields ...FieldError) *Error {
	return &Error{Kind: ValidationFailed, Fields: fields}
}

// NewInternal оборачивает неожиданную ошибку
func NewInternal(msg string, err error) *Error {
	return &Error{Kind: Internal, Message: msg, Err: err}
}

// WithStatus возвращает Internal-ошибку с явным HTTP-статусом
func WithStatus(status int, msg string, err error) *Error {
	return &Error{Kind: Internal, Message: msg, Status: status, Err: err}
}

// KindOf возвращает тип ошибки; всё, что не *Error, считается Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// As извлекает *Error из цепочки
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
