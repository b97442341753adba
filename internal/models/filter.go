package models

const (
	// OrderAsc сортировка по возрастанию
	OrderAsc = "asc"
	// OrderDesc сортировка по убыванию
	OrderDesc = "desc"
)

// ItemFilter параметры выборки списка товаров
type ItemFilter struct {
	Title     string // Частичное совпадение по названию
	UserID    *int64
	OrderBy   string // Колонка из разрешённого списка
	OrderType string // asc или desc
}

// UserFilter параметры выборки списка пользователей
type UserFilter struct {
	Name  string
	Email string
}
