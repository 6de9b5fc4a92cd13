package coursemanager

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-manager/internal/config"
	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/recordstore"
	"github.com/magabrotheeeer/course-manager/internal/recordstore/server"
	"github.com/magabrotheeeer/course-manager/internal/state"
)

// testEnv поднимает встроенный сервер хранилища и собирает поверх него ядро.
type testEnv struct {
	app      *App
	cfg      *config.Config
	store    *server.Server
	navigate []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := server.New(sl.Discard())
	store.Seed("users", []map[string]any{
		{"id": float64(10), "name": "Alice", "email": "alice@example.com", "password": "secret123", "role": "admin"},
		{"id": float64(20), "name": "Bob", "email": "bob@example.com", "password": "secret456", "role": "instructor"},
	})
	store.Seed("courses", []map[string]any{
		{
			"id": float64(1), "name": "Go basics",
			"start_date": "2024-04-01", "end_date": "2024-05-01",
			"creator_id": float64(10), "instructors": []any{float64(10)},
		},
	})

	router := chi.NewRouter()
	router.Mount("/api", store.Routes())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	env := &testEnv{store: store}
	cfg := &config.Config{
		Env: "test",
		RecordStore: config.RecordStore{
			BaseURL:      srv.URL + "/api",
			TimeoutStore: 5 * time.Second,
		},
		Session: config.Session{
			StatePath: filepath.Join(t.TempDir(), "session.json"),
		},
		SessionToken: config.SessionToken{
			SecretKey: "test-secret-key",
			TokenTTL:  time.Hour,
		},
	}
	env.cfg = cfg
	env.app = New(cfg, sl.Discard(), func(route string) {
		env.navigate = append(env.navigate, route)
	})
	return env
}

func TestApp_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.app.Session.Bootstrap(ctx)

	user, err := env.app.Session.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)
	require.NotNil(t, env.app.Session.Current())

	// токен и пользователь сохранены парой: второе ядро поверх того же
	// файла восстанавливает сессию без входа
	second := New(env.cfg, sl.Discard(), nil)
	second.Session.Bootstrap(ctx)
	require.NotNil(t, second.Session.Current())
	assert.Equal(t, "alice@example.com", second.Session.Current().Email)
}

func TestApp_LoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.app.Session.Bootstrap(ctx)

	_, err := env.app.Session.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, env.app.Session.Current())
}

func TestApp_CourseRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.app.Session.Bootstrap(ctx)

	user, err := env.app.Session.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	list := env.app.NewCourseList()
	list.Load(ctx)
	require.Equal(t, state.Ready, list.State())
	require.Len(t, list.Items(), 1)

	created, err := list.Create(ctx, user.ID, models.CourseForm{
		Name:      "Databases",
		StartDate: "2024-06-01",
		EndDate:   "2024-07-01",
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	require.Len(t, list.Items(), 2)

	// свежая загрузка видит созданный курс: запись дошла до хранилища
	fresh := env.app.NewCourseList()
	fresh.Load(ctx)
	require.Len(t, fresh.Items(), 2)

	// создатель стал первым инструктором
	courses, err := env.app.Courses.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestApp_UnauthorizedClearsSessionAndNavigates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.app.Session.Bootstrap(ctx)

	_, err := env.app.Session.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	// хранилище начинает отвергать любой токен
	env.store.RequireAuth(func(string) error { return errors.New("expired") })

	_, err = env.app.Courses.List(ctx)
	assert.ErrorIs(t, err, recordstore.ErrUnauthorized)

	assert.Nil(t, env.app.Session.Current())
	assert.Equal(t, []string{LoginRoute}, env.navigate)

	// сохраненная пара очищена
	_, statErr := os.Stat(env.cfg.StatePath)
	assert.True(t, os.IsNotExist(statErr))
}
