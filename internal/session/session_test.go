package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
)

type authStub struct {
	user  *models.User
	token string
	err   error
	calls int
}

func (a *authStub) Login(_ context.Context, _, _ string) (*models.User, string, error) {
	a.calls++
	if a.err != nil {
		return nil, "", a.err
	}
	return a.user, a.token, nil
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStorage_SaveLoadClear(t *testing.T) {
	path := statePath(t)
	storage := NewStorage(path)

	user := &models.User{ID: models.NumericID(10), Email: "alice@example.com"}
	require.NoError(t, storage.Save("token-1", user))
	assert.Equal(t, "token-1", storage.Token())

	token, loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, "alice@example.com", loaded.Email)

	// новое хранилище поверх того же файла видит токен сразу
	assert.Equal(t, "token-1", NewStorage(path).Token())

	require.NoError(t, storage.Clear())
	assert.Empty(t, storage.Token())
	_, _, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// повторная очистка без файла не ошибка
	require.NoError(t, storage.Clear())
}

func TestStorage_Load_Incomplete(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: "{not json"},
		{name: "token without user", data: `{"token":"t"}`},
		{name: "user without token", data: `{"user":{"id":1,"email":"a@b.c"}}`},
		{name: "user without id", data: `{"token":"t","user":{"email":"a@b.c"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := statePath(t)
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o600))

			_, _, err := NewStorage(path).Load()
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestManager_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no persisted session", func(t *testing.T) {
		m := NewManager(NewStorage(statePath(t)), &authStub{}, sl.Discard())
		assert.True(t, m.IsLoading())

		m.Bootstrap(ctx)
		assert.False(t, m.IsLoading())
		assert.Nil(t, m.Current())
	})

	t.Run("restores saved pair", func(t *testing.T) {
		path := statePath(t)
		storage := NewStorage(path)
		user := &models.User{ID: models.NumericID(10), Email: "alice@example.com"}
		require.NoError(t, storage.Save("token-1", user))

		var notified *models.User
		m := NewManager(storage, &authStub{}, sl.Discard())
		m.Subscribe(func(u *models.User) { notified = u })
		m.Bootstrap(ctx)

		require.NotNil(t, m.Current())
		assert.Equal(t, "alice@example.com", m.Current().Email)
		require.NotNil(t, notified)
		assert.Equal(t, "alice@example.com", notified.Email)
	})

	t.Run("clears malformed state", func(t *testing.T) {
		path := statePath(t)
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

		m := NewManager(NewStorage(path), &authStub{}, sl.Discard())
		m.Bootstrap(ctx)

		assert.Nil(t, m.Current())
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: models.NumericID(10), Email: "alice@example.com"}

	t.Run("success persists pair and notifies", func(t *testing.T) {
		path := statePath(t)
		storage := NewStorage(path)
		m := NewManager(storage, &authStub{user: user, token: "token-1"}, sl.Discard())
		m.Bootstrap(ctx)

		var notified *models.User
		m.Subscribe(func(u *models.User) { notified = u })

		got, err := m.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.False(t, m.IsLoading())
		require.NotNil(t, notified)

		// пара сохранена целиком: токен доступен клиенту хранилища
		assert.Equal(t, "token-1", storage.Token())
		token, loaded, err := storage.Load()
		require.NoError(t, err)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, "alice@example.com", loaded.Email)
	})

	t.Run("failure leaves session untouched", func(t *testing.T) {
		path := statePath(t)
		storage := NewStorage(path)
		m := NewManager(storage, &authStub{err: errors.New("invalid credentials")}, sl.Discard())
		m.Bootstrap(ctx)

		var seen []*models.User
		m.Subscribe(func(u *models.User) { seen = append(seen, u) })

		_, err := m.Login(ctx, "alice@example.com", "wrong")
		require.Error(t, err)
		assert.Nil(t, m.Current())
		assert.False(t, m.IsLoading())
		// вход и выход из состояния загрузки опубликованы, пользователя нет
		require.Len(t, seen, 2)
		assert.Nil(t, seen[0])
		assert.Nil(t, seen[1])
		assert.Empty(t, storage.Token())
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("subscribers observe the waiting state", func(t *testing.T) {
		m := NewManager(NewStorage(statePath(t)), &authStub{user: user, token: "token-1"}, sl.Discard())
		m.Bootstrap(ctx)

		var loadingSeen []bool
		m.Subscribe(func(*models.User) { loadingSeen = append(loadingSeen, m.IsLoading()) })

		_, err := m.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		require.Len(t, loadingSeen, 2)
		assert.True(t, loadingSeen[0])
		assert.False(t, loadingSeen[1])
	})

	t.Run("listener may read state during notification", func(t *testing.T) {
		m := NewManager(NewStorage(statePath(t)), &authStub{user: user, token: "token-1"}, sl.Discard())
		m.Bootstrap(ctx)

		var seen *models.User
		m.Subscribe(func(*models.User) { seen = m.Current() })

		_, err := m.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		require.NotNil(t, seen)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: models.NumericID(10), Email: "alice@example.com"}

	path := statePath(t)
	storage := NewStorage(path)
	m := NewManager(storage, &authStub{user: user, token: "token-1"}, sl.Discard())
	m.Bootstrap(ctx)
	_, err := m.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	var notified *models.User = user
	m.Subscribe(func(u *models.User) { notified = u })

	m.Logout()
	assert.Nil(t, m.Current())
	assert.Nil(t, notified)
	assert.Empty(t, storage.Token())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestManager_Subscribe_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewStorage(statePath(t)), &authStub{}, sl.Discard())

	calls := 0
	unsubscribe := m.Subscribe(func(*models.User) { calls++ })

	m.Bootstrap(ctx)
	assert.Equal(t, 1, calls)

	unsubscribe()
	m.Logout()
	assert.Equal(t, 1, calls)
}
