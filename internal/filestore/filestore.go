// Package filestore хранит загруженные изображения товаров.
//
// Есть две реализации: каталог на диске и бакет MinIO.
package filestore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound файл отсутствует в хранилище
var ErrNotFound = errors.New("file not found")

// File сохранённый файл
type File struct {
	Name         string // Имя в хранилище
	OriginalName string // Имя файла у клиента
	Ext          string // Расширение в нижнем регистре, с точкой
	Size         int64
}

// Store хранилище файлов
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (File, error)
	Exists(ctx context.Context, name string) (bool, error)
	// Remove удаляет файл, если он существует
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

func newFile(originalName string) File {
	ext := strings.ToLower(filepath.Ext(originalName))
	return File{
		Name:         uuid.NewString() + ext,
		OriginalName: originalName,
		Ext:          ext,
	}
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
