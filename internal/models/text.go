package models

import "encoding/json"

// Text строковое поле тела запроса. Число, логическое значение или объект
// сохраняются в виде исходного JSON, и дальше их отклоняет проверка формата поля.
type Text string

// UnmarshalJSON принимает любое JSON-значение; null оставляет поле пустым
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

// String возвращает значение как обычную строку
func (t Text) String() string { return string(t) }
