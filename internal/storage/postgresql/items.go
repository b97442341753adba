package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/marketplace/internal/models"
	"github.com/magabrotheeeer/marketplace/internal/storage"
)

var itemColumns = []string{"id", "title", "price", "image", "user_id", "created_at", "updated_at"}

// Колонки, по которым разрешена сортировка списка товаров
var itemOrderColumns = map[string]struct{}{
	"price":      {},
	"created_at": {},
}

func scanItem(row interface{ Scan(dest ...any) error }) (*models.Item, error) {
	var it models.Item
	if err := row.Scan(&it.ID, &it.Title, &it.Price, &it.Image, &it.UserID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateItem сохраняет товар и возвращает его id
func (s *Storage) CreateItem(ctx context.Context, it models.Item) (int64, error) {
	const op = "storage.postgresql.CreateItem"

	id, err := s.insert(ctx, s.psql.Insert(itemsTable).
		Columns("title", "price", "image", "user_id", "created_at", "updated_at").
		Values(it.Title, it.Price, it.Image, it.UserID, it.CreatedAt, it.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ItemByID возвращает товар по id
func (s *Storage) ItemByID(ctx context.Context, id int64) (*models.Item, error) {
	const op = "storage.postgresql.ItemByID"

	var it models.Item
	err := s.queryRow(ctx,
		s.psql.Select(itemColumns...).From(itemsTable).Where(sq.Eq{"id": id}),
		&it.ID, &it.Title, &it.Price, &it.Image, &it.UserID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

// ListItems возвращает товары по фильтру. Неизвестная колонка сортировки заменяется на created_at.
func (s *Storage) ListItems(ctx context.Context, f models.ItemFilter) ([]models.Item, error) {
	const op = "storage.postgresql.ListItems"

	b := s.psql.Select(itemColumns...).From(itemsTable)
	if f.Title != "" {
		b = b.Where(sq.Like{"title": contains(f.Title)})
	}
	if f.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *f.UserID})
	}

	orderBy := f.OrderBy
	if _, ok := itemOrderColumns[orderBy]; !ok {
		orderBy = "created_at"
	}
	orderType := "ASC"
	if f.OrderType == models.OrderDesc {
		orderType = "DESC"
	}
	b = b.OrderBy(orderBy + " " + orderType)

	rows, err := s.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// UpdateItem записывает переданные поля товара
func (s *Storage) UpdateItem(ctx context.Context, id int64, f models.ItemFields, updatedAt int64) error {
	const op = "storage.postgresql.UpdateItem"

	if f.Empty() {
		return nil
	}
	b := s.psql.Update(itemsTable)
	if f.Title != nil {
		b = b.Set("title", *f.Title)
	}
	if f.Price != nil {
		b = b.Set("price", *f.Price)
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

// SetItemImage записывает имя файла изображения; nil очищает поле
func (s *Storage) SetItemImage(ctx context.Context, id int64, image *string, updatedAt int64) error {
	const op = "storage.postgresql.SetItemImage"

	n, err := s.exec(ctx, s.psql.Update(itemsTable).
		Set("image", image).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// DeleteItem удаляет товар
func (s *Storage) DeleteItem(ctx context.Context, id int64) error {
	const op = "storage.postgresql.DeleteItem"

	n, err := s.exec(ctx, s.psql.Delete(itemsTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
