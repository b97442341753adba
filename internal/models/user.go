// Package models содержит доменные структуры маркетплейса: пользователей,
// товары, входные данные запросов и их публичные проекции.
package models

// User представляет зарегистрированного пользователя.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Password  string
	Token     string // Выдаётся при регистрации и не меняется
	CreatedAt int64  // Unix-время в миллисекундах
	UpdatedAt int64
}

// UserView публичная проекция пользователя
type UserView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// Principal аутентифицированный пользователь текущего запроса
type Principal struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// View возвращает публичную проекцию
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// Principal возвращает данные пользователя, которые кладутся в контекст запроса
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// RegisterInput тело запроса регистрации. Пустая строка означает отсутствие поля.
type RegisterInput struct {
	Name     Text `json:"name"`
	Email    Text `json:"email"`
	Phone    Text `json:"phone"`
	Password Text `json:"password"`
}

// LoginInput тело запроса входа
type LoginInput struct {
	Email    Text `json:"email"`
	Password Text `json:"password"`
}

// UpdateUserInput тело запроса изменения профиля
type UpdateUserInput struct {
	Name            Text `json:"name"`
	Email           Text `json:"email"`
	Phone           Text `json:"phone"`
	CurrentPassword Text `json:"current_password"`
	NewPassword     Text `json:"new_password"`
}

// UserFields поля пользователя, прошедшие валидацию. nil означает "не менять".
type UserFields struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// Empty сообщает, что нет ни одного поля для записи
func (f UserFields) Empty() bool {
	return f.Name == nil && f.Email == nil && f.Phone == nil && f.Password == nil
}

// TokenResponse ответ на регистрацию и вход
type TokenResponse struct {
	Token string `json:"token"`
}
