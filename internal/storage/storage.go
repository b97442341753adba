// Package storage содержит общие ошибки слоя хранения.
// Реализация на PostgreSQL находится в пакете postgresql.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists нарушено ограничение уникальности
	ErrAlreadyExists = errors.New("record already exists")
)
