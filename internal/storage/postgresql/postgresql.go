// Package postgresql реализует хранилище пользователей и товаров на PostgreSQL.
//
// Запросы строятся через squirrel по предикатам, выполняются через пул pgx.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/marketplace/internal/storage"
)

const (
	usersTable = "users"
	itemsTable = "items"
)

// PgxPool минимальный интерфейс пула, реализуется *pgxpool.Pool и pgxmock.PgxPoolIface
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage хранилище поверх пула соединений
type Storage struct {
	Pool PgxPool
	psql sq.StatementBuilderType
	raw  *pgxpool.Pool
}

// New создаёт пул соединений и проверяет доступность базы
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	pool, err := pgxpool.New(ctx, storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s := NewWithPool(pool)
	s.raw = pool
	return s, nil
}

// NewWithPool оборачивает готовый пул
func NewWithPool(pool PgxPool) *Storage {
	return &Storage{
		Pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SQLDB возвращает *sql.DB поверх того же пула, нужен для миграций
func (s *Storage) SQLDB() (*sql.DB, error) {
	if s.raw == nil {
		return nil, errors.New("storage is not backed by pgxpool")
	}
	return stdlib.OpenDBFromPool(s.raw), nil
}

// Ping проверяет соединение
func (s *Storage) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Close закрывает пул
func (s *Storage) Close() { s.Pool.Close() }

func (s *Storage) insert(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	var id int64
	if err := s.Pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (s *Storage) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) queryRow(ctx context.Context, b sq.SelectBuilder, dest ...any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	if err := s.Pool.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Storage) query(ctx context.Context, b sq.SelectBuilder) (pgx.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return rows, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", storage.ErrAlreadyExists, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}

func contains(s string) string {
	return "%" + s + "%"
}
