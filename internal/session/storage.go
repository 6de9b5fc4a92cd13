package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/magabrotheeeer/course-manager/internal/models"
)

// ErrNoSession — сохраненной сессии нет.
var ErrNoSession = errors.New("no persisted session")

// persistedSession — пара токен+пользователь, сохраняемая на диске.
// Пара пишется и очищается только целиком.
type persistedSession struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Storage — долговременное локальное хранилище сессии: одна пара
// токен+пользователь в JSON-файле. Запись идет через временный файл и
// rename, чтобы пара обновлялась атомарно.
type Storage struct {
	mu    sync.RWMutex
	path  string
	token string // кэш токена для быстрого чтения на каждый запрос
}

// NewStorage создает хранилище сессии поверх файла path.
func NewStorage(path string) *Storage {
	s := &Storage{path: path}
	if tok, _, err := s.Load(); err == nil {
		s.token = tok
	}
	return s
}

// Save атомарно записывает пару токен+пользователь.
func (s *Storage) Save(token string, user *models.User) error {
	const op = "session.Storage.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(persistedSession{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.token = token
	return nil
}

// Load читает сохраненную пару. Отсутствие файла — ErrNoSession,
// поврежденные или неполные данные — ошибка, по которой вызывающий
// обязан очистить хранилище.
func (s *Storage) Load() (string, *models.User, error) {
	const op = "session.Storage.Load"

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrNoSession)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	var stored persistedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if stored.Token == "" || stored.User == nil || stored.User.ID.IsZero() {
		return "", nil, fmt.Errorf("%s: incomplete session state", op)
	}
	return stored.Token, stored.User, nil
}

// Clear атомарно удаляет пару. Отсутствие файла не считается ошибкой.
func (s *Storage) Clear() error {
	const op = "session.Storage.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Token возвращает токен текущей сессии или пустую строку.
// Реализует recordstore.TokenProvider: читается на каждый запрос клиента.
func (s *Storage) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
