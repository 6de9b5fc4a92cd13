// Package state содержит контейнеры состояния списков для страниц приложения.
//
// Контейнер загружает коллекцию из доменного сервиса, держит ее локальную
// копию и согласует локальные правки с ответами хранилища. Обновление
// локального состояния строго после подтверждения: создание добавляет
// запись только из ответа сервера, неудачная мутация оставляет список
// ровно таким, каким он был.
//
// Жизненный цикл контейнера: Idle → Loading → {Ready, Error}; из Ready и
// Error любая операция снова ведет через Loading. Контейнер живет, пока
// жива его страница; Close помечает контейнер снятым, и поздние ответы
// уже не меняют состояние.
package state

// Phase — фаза жизненного цикла контейнера.
type Phase int

// Фазы контейнера.
const (
	Idle Phase = iota
	Loading
	Ready
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	}
	return "unknown"
}
