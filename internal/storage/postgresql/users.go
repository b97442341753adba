package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

var userColumns = []string{"id", "name", "email", "phone", "password", "token", "created_at", "updated_at"}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Token, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser сохраняет пользователя и возвращает его id
func (s *Storage) CreateUser(ctx context.Context, u models.User) (int64, error) {
	const op = "storage.postgresql.CreateUser"

	id, err := s.insert(ctx, s.psql.Insert(usersTable).
		Columns("name", "email", "phone", "password", "token", "created_at", "updated_at").
		Values(u.Name, u.Email, u.Phone, u.Password, u.Token, u.CreatedAt, u.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (s *Storage) userBy(ctx context.Context, op string, where sq.Sqlizer) (*models.User, error) {
	query, args, err := s.psql.Select(userColumns...).From(usersTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u, err := scanUser(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return u, nil
}

// UserByID возвращает пользователя по id
func (s *Storage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userBy(ctx, "storage.postgresql.UserByID", sq.Eq{"id": id})
}

// UserByToken возвращает пользователя по токену доступа
func (s *Storage) UserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.userBy(ctx, "storage.postgresql.UserByToken", sq.Eq{"token": token})
}

// UserByCredentials возвращает пользователя с указанными email и паролем
func (s *Storage) UserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	return s.userBy(ctx, "storage.postgresql.UserByCredentials", sq.Eq{"email": email, "password": password})
}

// EmailTaken проверяет, занят ли email другим пользователем. exceptID = 0 не исключает никого.
func (s *Storage) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	const op = "storage.postgresql.EmailTaken"

	where := sq.And{sq.Eq{"email": email}}
	if exceptID != 0 {
		where = append(where, sq.NotEq{"id": exceptID})
	}
	sub := s.psql.Select("1").From(usersTable).Where(where)
	subSQL, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := s.Pool.QueryRow(ctx, "SELECT EXISTS ("+subSQL+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return exists, nil
}

// UpdateUser записывает переданные поля. Пустой набор полей не пишет ничего.
func (s *Storage) UpdateUser(ctx context.Context, id int64, f models.UserFields, updatedAt int64) error {
	const op = "storage.postgresql.UpdateUser"

	if f.Empty() {
		return nil
	}
	b := s.psql.Update(usersTable)
	if f.Name != nil {
		b = b.Set("name", *f.Name)
	}
	if f.Email != nil {
		b = b.Set("email", *f.Email)
	}
	if f.Phone != nil {
		b = b.Set("phone", *f.Phone)
	}
	if f.Password != nil {
		b = b.Set("password", *f.Password)
	}
	b = b.Set("updated_at", updatedAt).Where(sq.Eq{"id": id})

	n, err := s.exec(ctx, b)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ListUsers возвращает пользователей, отфильтрованных по частичному совпадению имени и email
func (s *Storage) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	const op = "storage.postgresql.ListUsers"

	b := s.psql.Select(userColumns...).From(usersTable)
	if f.Name != "" {
		b = b.Where(sq.Like{"name": contains(f.Name)})
	}
	if f.Email != "" {
		b = b.Where(sq.Like{"email": contains(f.Email)})
	}
	rows, err := s.query(ctx, b.OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
