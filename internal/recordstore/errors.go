package recordstore

import "errors"

// Ошибки уровня хранилища записей. Проверяются через errors.Is:
// обертки добавляют контекст операции, но сохраняют сентинел.
var (
	// ErrNotFound — запрошенная запись отсутствует в хранилище.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized — хранилище ответило 401; сессия подлежит сбросу.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable — транспортная ошибка или любой другой не-2xx ответ.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
