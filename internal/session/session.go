// Package session владеет состоянием текущего пользователя и жизненным
// циклом входа/выхода.
//
// Менеджер — единственный, кто пишет сохраненную пару токен+пользователь;
// читают ее все через Current и подписки. Пока IsLoading возвращает true,
// потребители обязаны показывать нейтральное состояние ожидания и не
// принимать решений об авторизации.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
)

// Authenticator описывает проверку учетных данных.
type Authenticator interface {
	// Login возвращает пользователя и токен сессии или ошибку.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Listener вызывается на каждое изменение состояния сессии.
// nil означает «пользователя нет».
type Listener func(user *models.User)

// Manager управляет состоянием сессии.
type Manager struct {
	loginMu sync.Mutex // сериализует Login целиком, от проверки до записи
	mu      sync.Mutex
	storage *Storage
	auth    Authenticator
	log     *slog.Logger

	user    *models.User
	loading bool

	subsMu sync.Mutex
	subs   map[int]Listener
	nextID int
}

// NewManager создает менеджер сессии. До вызова Bootstrap менеджер находится
// в состоянии загрузки.
func NewManager(storage *Storage, auth Authenticator, log *slog.Logger) *Manager {
	return &Manager{
		storage: storage,
		auth:    auth,
		log:     log,
		loading: true,
		subs:    map[int]Listener{},
	}
}

// Bootstrap восстанавливает сохраненную сессию. Поврежденные или неполные
// данные очищаются, сессия остается пустой. Состояние загрузки снимается
// в любом исходе.
func (m *Manager) Bootstrap(ctx context.Context) {
	const op = "session.Bootstrap"
	_ = ctx

	m.mu.Lock()
	_, user, err := m.storage.Load()
	if err != nil {
		if err := m.storage.Clear(); err != nil {
			m.log.Warn("failed to clear session state", sl.Op(op), sl.Err(err))
		}
		m.user = nil
	} else {
		m.user = user
	}
	m.loading = false
	current := m.user
	m.mu.Unlock()

	if current != nil {
		m.log.Info("session restored", slog.String("user_id", current.ID.Canonical()))
	} else {
		m.log.Info("no persisted session")
	}
	m.notify(current)
}

// Login проверяет учетные данные и публикует пользователя как текущего.
// Пара токен+пользователь сохраняется только при успехе; при ошибке
// состояние сессии не меняется. Повторные вызовы сериализуются.
// Подписчики уведомляются дважды: на входе в состояние загрузки и по
// завершении, так что ожидание видно без опроса IsLoading.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "session.Login"

	m.loginMu.Lock()
	defer m.loginMu.Unlock()

	m.mu.Lock()
	m.loading = true
	current := m.user
	m.mu.Unlock()
	m.notify(current)

	user, sessionToken, err := m.auth.Login(ctx, email, password)
	if err == nil {
		err = m.storage.Save(sessionToken, user)
	}

	m.mu.Lock()
	m.loading = false
	if err == nil {
		m.user = user
	}
	current = m.user
	m.mu.Unlock()
	m.notify(current)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.log.Info("user logged in", slog.String("user_id", user.ID.Canonical()))
	return user, nil
}

// Logout очищает сохраненную сессию и публикует «пользователя нет».
// Сетевых вызовов не делает.
func (m *Manager) Logout() {
	const op = "session.Logout"

	m.mu.Lock()
	if err := m.storage.Clear(); err != nil {
		m.log.Warn("failed to clear session state", sl.Op(op), sl.Err(err))
	}
	m.user = nil
	m.mu.Unlock()

	m.log.Info("user logged out")
	m.notify(nil)
}

// ForceLogout сбрасывает сессию по внешнему сигналу — ответу 401 хранилища.
// Поведение совпадает с Logout, отдельное имя фиксирует источник вызова.
func (m *Manager) ForceLogout() {
	m.log.Warn("session invalidated by store")
	m.Logout()
}

// Current возвращает текущего пользователя или nil.
func (m *Manager) Current() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsLoading сообщает, идет ли восстановление сессии или вход.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Subscribe регистрирует слушателя изменений сессии и возвращает функцию
// отписки.
func (m *Manager) Subscribe(fn Listener) func() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify(user *models.User) {
	m.subsMu.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}
}
