// Package cache хранит JSON-значения в redis. Используется для кэширования
// пользователей, найденных по токену.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/marketplace/internal/config"
)

// Cache интерфейс кэша
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

// Redis кэш поверх redis-клиента
type Redis struct {
	Db *redis.Client
}

// New подключается к redis. Если адрес не задан, возвращается Nop.
func New(ctx context.Context, cfg config.RedisConnection) (Cache, error) {
	if cfg.AddressRedis == "" {
		return Nop{}, nil
	}
	r, err := InitServer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// InitServer создаёт клиента и проверяет соединение
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db}, nil
}

// Get читает значение по ключу. false без ошибки означает промах.
func (c *Redis) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение в JSON
func (c *Redis) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.Db.Set(ctx, key, jsonData, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет ключ
func (c *Redis) Invalidate(ctx context.Context, key string) error {
	return c.Db.Del(ctx, key).Err()
}

// Close закрывает соединение
func (c *Redis) Close() error {
	return c.Db.Close()
}

// Nop кэш, который ничего не хранит
type Nop struct{}

// Get всегда промах
func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set ничего не делает
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }

// Invalidate ничего не делает
func (Nop) Invalidate(context.Context, string) error { return nil }

// Close ничего не делает
func (Nop) Close() error { return nil }
