// Package coursemanager собирает клиентское ядро приложения: клиент
// хранилища, сервисы, менеджер сессии и фабрики контейнеров состояния.
// Слой представления потребляет готовый App.
package coursemanager

import (
	"log/slog"

	"github.com/magabrotheeeer/course-manager/internal/config"
	"github.com/magabrotheeeer/course-manager/internal/lib/token"
	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/recordstore"
	authservice "github.com/magabrotheeeer/course-manager/internal/services/auth"
	coursesservice "github.com/magabrotheeeer/course-manager/internal/services/courses"
	externalservice "github.com/magabrotheeeer/course-manager/internal/services/external"
	lessonsservice "github.com/magabrotheeeer/course-manager/internal/services/lessons"
	usersservice "github.com/magabrotheeeer/course-manager/internal/services/users"
	"github.com/magabrotheeeer/course-manager/internal/session"
	"github.com/magabrotheeeer/course-manager/internal/state"
)

// LoginRoute — точка входа, на которую слой представления обязан перейти
// после принудительного сброса сессии.
const LoginRoute = "/login"

// App — собранное клиентское ядро.
type App struct {
	Log      *slog.Logger
	Client   *recordstore.Client
	Session  *session.Manager
	Users    *usersservice.Service
	Courses  *coursesservice.Service
	Lessons  *lessonsservice.Service
	Auth     *authservice.Service
	External *externalservice.Client
}

// New собирает ядро по конфигу. navigate вызывается с маршрутом входа на
// каждый ответ 401 хранилища, после сброса сессии; nil допустим.
func New(cfg *config.Config, logger *slog.Logger, navigate func(route string)) *App {
	storage := session.NewStorage(cfg.StatePath)
	client := recordstore.NewClient(cfg.BaseURL, storage, cfg.TimeoutStore)

	tokenMaker := token.NewMaker(cfg.SecretKey, cfg.TokenTTL)
	users := usersservice.New(client)
	auth := authservice.New(users, tokenMaker)
	sessionManager := session.NewManager(storage, auth, logger)

	client.SetUnauthorizedHook(func() {
		sessionManager.ForceLogout()
		if navigate != nil {
			navigate(LoginRoute)
		}
	})

	return &App{
		Log:      logger,
		Client:   client,
		Session:  sessionManager,
		Users:    users,
		Courses:  coursesservice.New(client),
		Lessons:  lessonsservice.New(client),
		Auth:     auth,
		External: externalservice.New(cfg.SuggestionsURL, cfg.TimeoutExternal, logger),
	}
}

// NewCourseList создает контейнер списка курсов для страницы.
func (a *App) NewCourseList() *state.CourseList {
	return state.NewCourseList(a.Courses, a.Log)
}

// NewLessonList создает контейнер списка уроков, ограниченный курсом.
// Нулевой courseID — список без привязки.
func (a *App) NewLessonList(courseID models.ID) *state.LessonList {
	return state.NewLessonList(a.Lessons, courseID, a.Log)
}
