// Package params разбирает параметры пути и запроса.
package params

import (
	"strconv"
	"strings"

	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
)

// ParseID приводит идентификатор из пути к числу. Нечисловой id означает NotFound.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewNotFound()
	}
	return id, nil
}

// OptionalInt64 разбирает необязательный числовой фильтр. Пустое или нечисловое значение игнорируется.
func OptionalInt64(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
