package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
	"github.com/magabrotheeeer/course-manager/internal/models"
)

// CoursesService описывает операции сервиса курсов, нужные контейнеру.
type CoursesService interface {
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, creatorID models.ID, form models.CourseForm) (*models.Course, error)
	Update(ctx context.Context, id models.ID, form models.CourseForm) (*models.Course, error)
	Delete(ctx context.Context, id models.ID) error
}

// CourseList — контейнер состояния списка курсов.
type CourseList struct {
	mu     sync.Mutex
	svc    CoursesService
	log    *slog.Logger
	items  []models.Course
	phase  Phase
	errMsg string
	closed bool
	gen    int // поколение загрузки, отсекает устаревшие ответы

	subsMu sync.Mutex
	subs   map[int]func()
	nextID int
}

// NewCourseList создает контейнер списка курсов в фазе Idle.
func NewCourseList(svc CoursesService, log *slog.Logger) *CourseList {
	return &CourseList{
		svc:  svc,
		log:  log,
		subs: map[int]func(){},
	}
}

// Load загружает коллекцию целиком и заменяет локальное состояние.
// Ошибка не пробрасывается: фаза становится Error, сообщение доступно
// через Err.
func (l *CourseList) Load(ctx context.Context) {
	const op = "state.CourseList.Load"

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.phase = Loading
	l.errMsg = ""
	l.gen++
	gen := l.gen
	l.mu.Unlock()
	l.notify()

	items, err := l.svc.List(ctx)

	l.mu.Lock()
	if l.closed || gen != l.gen {
		// страница снята или загрузку вытеснила более новая
		l.mu.Unlock()
		return
	}
	if err != nil {
		l.phase = Error
		l.errMsg = "failed to load courses"
		l.log.Error("failed to load courses", sl.Op(op), sl.Err(err))
	} else {
		l.items = items
		l.phase = Ready
	}
	l.mu.Unlock()
	l.notify()
}

// Create создает курс и после подтверждения добавляет запись из ответа
// сервера в локальное состояние. При ошибке состояние не меняется,
// ошибка возвращается вызывающему.
func (l *CourseList) Create(ctx context.Context, creatorID models.ID, form models.CourseForm) (*models.Course, error) {
	prev := l.beginMutation()

	created, err := l.svc.Create(ctx, creatorID, form)

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

// Update обновляет курс и после подтверждения заменяет совпадающую по
// идентификатору запись. При ошибке состояние не меняется.
func (l *CourseList) Update(ctx context.Context, id models.ID, form models.CourseForm) (*models.Course, error) {
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

// Delete удаляет курс и после подтверждения убирает запись из локального
// состояния. При ошибке состояние не меняется.
func (l *CourseList) Delete(ctx context.Context, id models.ID) error {
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
	for _, course := range l.items {
		if !models.SameID(course.ID, id) {
			remaining = append(remaining, course)
		}
	}
	l.items = remaining
	l.phase = Ready
	l.mu.Unlock()
	l.notify()
	return nil
}

// Items возвращает копию локальной коллекции.
func (l *CourseList) Items() []models.Course {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]models.Course, len(l.items))
	copy(items, l.items)
	return items
}

// State возвращает текущую фазу контейнера.
func (l *CourseList) State() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Err возвращает сообщение последней ошибки загрузки или пустую строку.
func (l *CourseList) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Close снимает контейнер: запросы в полете довыполняются, но их ответы
// уже не меняют состояние.
func (l *CourseList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

// Subscribe регистрирует слушателя изменений контейнера и возвращает
// функцию отписки.
func (l *CourseList) Subscribe(fn func()) func() {
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

func (l *CourseList) beginMutation() Phase {
	l.mu.Lock()
	prev := l.phase
	if !l.closed {
		l.phase = Loading
	}
	l.mu.Unlock()
	l.notify()
	return prev
}

func (l *CourseList) notify() {
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
