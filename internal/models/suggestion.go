package models

// Suggestion — профиль-кандидат из внешнего сервиса случайных пользователей.
// Структура повторяет формат ответа внешнего API.
type Suggestion struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Medium string `json:"medium"`
	} `json:"picture"`
	Login struct {
		UUID string `json:"uuid"`
	} `json:"login"`
}

// FullName возвращает имя и фамилию одной строкой.
func (s Suggestion) FullName() string {
	if s.Name.First == "" {
		return s.Name.Last
	}
	if s.Name.Last == "" {
		return s.Name.First
	}
	return s.Name.First + " " + s.Name.Last
}
