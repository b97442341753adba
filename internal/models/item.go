package models

// Item товар, выставленный пользователем
type Item struct {
	ID        int64
	Title     string
	Price     float64
	Image     *string // Имя файла в хранилище изображений
	UserID    int64
	CreatedAt int64
	UpdatedAt int64
}

// ItemView публичная проекция товара
type ItemView struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     *string `json:"image"`
	UserID    int64   `json:"user_id"`
	CreatedAt int64   `json:"created_at"`
}

// View возвращает публичную проекцию
func (i *Item) View() ItemView {
	return ItemView{
		ID:        i.ID,
		Title:     i.Title,
		Price:     i.Price,
		Image:     i.Image,
		UserID:    i.UserID,
		CreatedAt: i.CreatedAt,
	}
}

// ItemInput тело запроса создания и изменения товара.
// Price принимает число или числовую строку.
type ItemInput struct {
	Title Text `json:"title"`
	Price any  `json:"price"`
}

// ItemFields поля товара, прошедшие валидацию
type ItemFields struct {
	Title *string
	Price *float64
}

// Empty сообщает, что нет ни одного поля для записи
func (f ItemFields) Empty() bool {
	return f.Title == nil && f.Price == nil
}
