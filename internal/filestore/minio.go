package filestore

import (
	"context"
	"fmt"
	"io"
	"mime"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio хранит файлы в бакете MinIO
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio подключается к MinIO и создаёт бакет, если его нет
func NewMinio(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Minio, error) {
	const op = "filestore.NewMinio"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: bucket check: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: make bucket: %w", op, err)
		}
	}
	return &Minio{client: client, bucket: bucket}, nil
}

// Save загружает объект потоком
func (m *Minio) Save(ctx context.Context, originalName string, r io.Reader) (File, error) {
	const op = "filestore.Minio.Save"

	f := newFile(originalName)
	info, err := m.client.PutObject(ctx, m.bucket, f.Name, r, -1, minio.PutObjectOptions{
		ContentType: mime.TypeByExtension(f.Ext),
	})
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", op, err)
	}
	f.Size = info.Size
	return f, nil
}

// Exists проверяет наличие объекта
func (m *Minio) Exists(ctx context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("filestore.Minio.Exists: %w", err)
	}
	return true, nil
}

// Remove удаляет объект, если он есть
func (m *Minio) Remove(ctx context.Context, name string) error {
	ok, err := m.Exists(ctx, name)
	if err != nil || !ok {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("filestore.Minio.Remove: %w", err)
	}
	return nil
}

// Open возвращает объект на чтение
func (m *Minio) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	ok, err := m.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("filestore.Minio.Open: %w", err)
	}
	return obj, nil
}
