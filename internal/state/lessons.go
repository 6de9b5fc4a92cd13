package state

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
)

// LessonsService описывает операции сервиса уроков, нужные контейнеру.
type LessonsService interface {
	List(ctx context.Context) ([]models.Lesson, error)
	ListByCourse(ctx context.Context, courseID models.ID) ([]models.Lesson, error)
	Create(ctx context.Context, creatorID, courseID models.ID, form models.LessonForm) (*models.Lesson, error)
	Update(ctx context.Context, id models.ID, form models.LessonForm) (*models.Lesson, error)
	Delete(ctx context.Context, id models.ID) error
}

// LessonList — контейнер состояния списка уроков, опционально ограниченный
// курсом. Фильтры по названию и статусу сужают представление локально:
// Items возвращает отфильтрованный срез, загруженная коллекция остается
// нетронутой.
type LessonList struct {
	mu       sync.Mutex
	svc      LessonsService
	log      *slog.Logger
	courseID models.ID

	filterTitle  string
	filterStatus models.LessonStatus

	items  []models.Lesson
	phase  Phase
	errMsg string
	closed bool
	gen    int

	subsMu sync.Mutex
	subs   map[int]func()
	nextID int
}

// NewLessonList создает контейнер списка уроков в фазе Idle.
// Нулевой courseID означает список без привязки к курсу.
func NewLessonList(svc LessonsService, courseID models.ID, log *slog.Logger) *LessonList {
	return &LessonList{
		svc:      svc,
		courseID: courseID,
		log:      log,
		subs:     map[int]func(){},
	}
}

// Load загружает уроки курса (или все уроки) и заменяет локальное состояние.
func (l *LessonList) Load(ctx context.Context) {
	const op = "state.LessonList.Load"

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.phase = Loading
	l.errMsg = ""
	l.gen++
	gen := l.gen
	courseID := l.courseID
	l.mu.Unlock()
	l.notify()

	var items []models.Lesson
	var err error
	if courseID.IsZero() {
		items, err = l.svc.List(ctx)
	} else {
		items, err = l.svc.ListByCourse(ctx, courseID)
	}

	l.mu.Lock()
	if l.closed || gen != l.gen {
		l.mu.Unlock()
		return
	}
	if err != nil {
		l.phase = Error
		l.errMsg = "failed to load lessons"
		l.log.Error("failed to load lessons", sl.Op(op), sl.Err(err))
	} else {
		l.items = items
		l.phase = Ready
	}
	l.mu.Unlock()
	l.notify()
}

// SetCourse меняет курс, которым ограничен контейнер, и перечитывает
// коллекцию из сервиса. Смена на тот же курс — no-op.
func (l *LessonList) SetCourse(ctx context.Context, courseID models.ID) {
	l.mu.Lock()
	if models.SameID(l.courseID, courseID) {
		l.mu.Unlock()
		return
	}
	l.courseID = courseID
	l.mu.Unlock()
	l.Load(ctx)
}

// SetFilter задает фильтры названия и статуса и перечитывает коллекцию:
// локальная фильтрация устаревших данных правды не гарантирует.
func (l *LessonList) SetFilter(ctx context.Context, title string, status models.LessonStatus) {
	l.mu.Lock()
	if l.filterTitle == title && l.filterStatus == status {
		l.mu.Unlock()
		return
	}
	l.filterTitle = title
	l.filterStatus = status
	l.mu.Unlock()
	l.Load(ctx)
}

// Create создает урок текущего курса и после подтверждения добавляет
// запись из ответа сервера. При ошибке состояние не меняется.
func (l *LessonList) Create(ctx context.Context, creatorID models.ID, form models.LessonForm) (*models.Lesson, error) {
	l.mu.Lock()
	courseID := l.courseID
	l.mu.Unlock()
	prev := l.beginMutation()

	created, err := l.svc.Create(ctx, creatorID, courseID, form)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return created, err
	}
	if err != nil {
		l.phase = prev
		l.mu.Unlock()
		l.notify()
		return nil, err
	}
	l.items = append(l.items, *created)
	l.phase = Ready
	l.mu.Unlock()
	l.notify()
	return created, nil
}

// Update обновляет урок и после подтверждения заменяет совпадающую по
// идентификатору запись. При ошибке состояние не меняется.
func (l *LessonList) Update(ctx context.Context, id models.ID, form models.LessonForm) (*models.Lesson, error) {
	prev := l.beginMutation()

	updated, err := l.svc.Update(ctx, id, form)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return updated, err
	}
	if err != nil {
		l.phase = prev
		l.mu.Unlock()
		l.notify()
		return nil, err
	}
	for i := range l.items {
		if models.SameID(l.items[i].ID, id) {
			l.items[i] = *updated
			break
		}
	}
	l.phase = Ready
	l.mu.Unlock()
	l.notify()
	return updated, nil
}

// Delete удаляет урок и после подтверждения убирает запись из локального
// состояния. При ошибке состояние не меняется.
func (l *LessonList) Delete(ctx context.Context, id models.ID) error {
	prev := l.beginMutation()

	err := l.svc.Delete(ctx, id)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return err
	}
	if err != nil {
		l.phase = prev
		l.mu.Unlock()
		l.notify()
		return err
	}
	remaining := l.items[:0]
	for _, lesson := range l.items {
		if !models.SameID(lesson.ID, id) {
			remaining = append(remaining, lesson)
		}
	}
	l.items = remaining
	l.phase = Ready
	l.mu.Unlock()
	l.notify()
	return nil
}

// Items возвращает представление коллекции с учетом фильтров: подстрока
// названия без учета регистра и точное совпадение статуса.
func (l *LessonList) Items() []models.Lesson {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]models.Lesson, 0, len(l.items))
	title := strings.ToLower(l.filterTitle)
	for _, lesson := range l.items {
		if title != "" && !strings.Contains(strings.ToLower(lesson.Title), title) {
			continue
		}
		if l.filterStatus != "" && lesson.Status != l.filterStatus {
			continue
		}
		result = append(result, lesson)
	}
	return result
}

// State возвращает текущую фазу контейнера.
func (l *LessonList) State() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Err возвращает сообщение последней ошибки загрузки или пустую строку.
func (l *LessonList) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Close снимает контейнер: ответы запросов в полете не меняют состояние.
func (l *LessonList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

// Subscribe регистрирует слушателя изменений контейнера и возвращает
// функцию отписки.
func (l *LessonList) Subscribe(fn func()) func() {
	l.subsMu.Lock()
	defer l.subsMu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.subsMu.Lock()
		defer l.subsMu.Unlock()
		delete(l.subs, id)
	}
}

func (l *LessonList) beginMutation() Phase {
	l.mu.Lock()
	prev := l.phase
	if !l.closed {
		l.phase = Loading
	}
	l.mu.Unlock()
	l.notify()
	return prev
}

func (l *LessonList) notify() {
	l.subsMu.Lock()
	listeners := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		listeners = append(listeners, fn)
	}
	l.subsMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
