package models

// Роли пользователей системы.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User представляет зарегистрированного пользователя системы.
// Пароль хранится в записи хранилища открытым текстом — так устроено
// само хранилище записей, отдельного сервиса аутентификации нет.
type User struct {
	ID       ID     `json:"id,omitempty"`     // Идентификатор записи
	Name     string `json:"name"`             // Полное имя
	Email    string `json:"email"`            // Электронная почта (уникальная)
	Password string `json:"password"`         // Пароль
	Avatar   string `json:"avatar,omitempty"` // Ссылка на аватар
	Role     string `json:"role"`             // Роль: admin, instructor или student
}

// RegisterForm используется для приёма данных формы регистрации,
// прежде чем конвертировать их в User.
type RegisterForm struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role" validate:"required,oneof=admin instructor student"`
}

// LoginForm используется для приёма данных формы входа.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
