// Package validation содержит локальные валидаторы форм.
//
// Валидация выполняется до любого сетевого вызова: ошибка валидации всегда
// исправима на месте и никогда не доходит до хранилища записей.
package validation

import (
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// Формат дат курса и формат даты публикации урока.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// Required сообщает, что значение непустое (после обрезки пробелов).
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinLength сообщает, что длина значения не меньше min.
func MinLength(value string, min int) bool {
	return len(value) >= min
}

// MaxLength сообщает, что длина значения не больше max.
func MaxLength(value string, max int) bool {
	return len(value) <= max
}

// Email сообщает, что значение — корректный адрес электронной почты.
func Email(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

// URL сообщает, что значение — корректный абсолютный URL.
func URL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// DateAfter сообщает, что дата date строго позже даты after.
// Некорректные даты дают false.
func DateAfter(date, after string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	a, err := time.Parse(DateLayout, after)
	if err != nil {
		return false
	}
	return d.After(a)
}

// DateFuture сообщает, что дата строго позже текущего момента.
func DateFuture(date string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return d.After(time.Now())
}

// ValidateEmail возвращает сообщение об ошибке или пустую строку.
func ValidateEmail(email string) string {
	if !Required(email) {
		return "email is a required field"
	}
	if !Email(email) {
		return "email is not a valid address"
	}
	return ""
}

// ValidatePassword возвращает сообщение об ошибке или пустую строку.
func ValidatePassword(password string) string {
	if !Required(password) {
		return "password is a required field"
	}
	if !MinLength(password, 6) {
		return "password must be at least 6 characters"
	}
	return ""
}

// ValidateName возвращает сообщение об ошибке или пустую строку.
func ValidateName(name string) string {
	if !Required(name) {
		return "name is a required field"
	}
	if !MinLength(name, 3) {
		return "name must be at least 3 characters"
	}
	return ""
}

// ValidateCourseName возвращает сообщение об ошибке или пустую строку.
func ValidateCourseName(name string) string {
	if !Required(name) {
		return "course name is a required field"
	}
	if !MinLength(name, 3) {
		return "course name must be at least 3 characters"
	}
	return ""
}

// ValidateLessonTitle возвращает сообщение об ошибке или пустую строку.
func ValidateLessonTitle(title string) string {
	if !Required(title) {
		return "lesson title is a required field"
	}
	if !MinLength(title, 3) {
		return "lesson title must be at least 3 characters"
	}
	return ""
}

// ValidateVideoURL возвращает сообщение об ошибке или пустую строку.
func ValidateVideoURL(value string) string {
	if !Required(value) {
		return "video url is a required field"
	}
	if !URL(value) {
		return "video url is not a valid url"
	}
	return ""
}

// ValidateCourseDates проверяет, что дата окончания строго позже даты начала.
// Возвращает сообщение об ошибке или пустую строку.
func ValidateCourseDates(startDate, endDate string) string {
	if !DateAfter(endDate, startDate) {
		return "end date must be after start date"
	}
	return ""
}
