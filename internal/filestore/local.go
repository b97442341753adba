package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local хранит файлы в каталоге на диске
type Local struct {
	dir string
}

// NewLocal создаёт каталог, если его нет
func NewLocal(dir string) (*Local, error) {
	const op = "filestore.NewLocal"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Local{dir: dir}, nil
}

// Save записывает содержимое r в новый файл
func (l *Local) Save(_ context.Context, originalName string, r io.Reader) (File, error) {
	const op = "filestore.Local.Save"

	f := newFile(originalName)
	dst, err := os.OpenFile(filepath.Join(l.dir, f.Name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", op, err)
	}
	n, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(l.dir, f.Name))
		return File{}, fmt.Errorf("%s: %w", op, err)
	}
	f.Size = n
	return f, nil
}

// Exists проверяет наличие файла
func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	_, err := os.Stat(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("filestore.Local.Exists: %w", err)
	}
	return true, nil
}

// Remove удаляет файл, отсутствующий файл не считается ошибкой
func (l *Local) Remove(ctx context.Context, name string) error {
	ok, err := l.Exists(ctx, name)
	if err != nil || !ok {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore.Local.Remove: %w", err)
	}
	return nil
}

// Open открывает файл на чтение
func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filestore.Local.Open: %w", err)
	}
	return f, nil
}
