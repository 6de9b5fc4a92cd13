// Package lessons содержит типизированные операции над коллекцией lessons
// хранилища записей.
package lessons

import (
	"context"

	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/recordstore"
	"github.com/magabrotheeeer/course-manager/internal/validation"
)

// RecordStore описывает операции клиента хранилища, нужные сервису.
type RecordStore interface {
	List(ctx context.Context, collection string, q recordstore.Query, out any) error
	Get(ctx context.Context, collection, id string, out any) error
	Create(ctx context.Context, collection string, body, out any) error
	Replace(ctx context.Context, collection, id string, body, out any) error
	Delete(ctx context.Context, collection, id string) error
}

const collection = "lessons"

// Filter — серверные фильтры списка уроков. Пустые поля не применяются.
type Filter struct {
	CourseID models.ID
	Title    string
	Status   models.LessonStatus
}

// Service реализует операции над уроками.
type Service struct {
	store RecordStore
}

// New создает новый экземпляр Service.
func New(store RecordStore) *Service {
	return &Service{store: store}
}

// List возвращает все уроки.
func (s *Service) List(ctx context.Context) ([]models.Lesson, error) {
	var result []models.Lesson
	if err := s.store.List(ctx, collection, recordstore.NewQuery(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID возвращает урок по идентификатору.
func (s *Service) GetByID(ctx context.Context, id models.ID) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.store.Get(ctx, collection, id.Canonical(), &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListByCourse возвращает уроки курса.
func (s *Service) ListByCourse(ctx context.Context, courseID models.ID) ([]models.Lesson, error) {
	var result []models.Lesson
	q := recordstore.NewQuery().Eq("course_id", courseID.Canonical())
	if err := s.store.List(ctx, collection, q, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListFiltered возвращает уроки, отфильтрованные на стороне хранилища.
func (s *Service) ListFiltered(ctx context.Context, filter Filter) ([]models.Lesson, error) {
	q := recordstore.NewQuery()
	if !filter.CourseID.IsZero() {
		q = q.Eq("course_id", filter.CourseID.Canonical())
	}
	if filter.Title != "" {
		q = q.Like("title", filter.Title)
	}
	if filter.Status != "" {
		q = q.Eq("status", string(filter.Status))
	}
	var result []models.Lesson
	if err := s.store.List(ctx, collection, q, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Create создает урок курса от имени создателя creatorID.
func (s *Service) Create(ctx context.Context, creatorID, courseID models.ID, form models.LessonForm) (*models.Lesson, error) {
	if err := validation.ValidateStruct(form); err != nil {
		return nil, err
	}
	lesson := models.Lesson{
		Title:       form.Title,
		Status:      models.LessonStatus(form.Status),
		PublishDate: form.PublishDate,
		VideoURL:    form.VideoURL,
		CourseID:    courseID,
		CreatorID:   creatorID,
	}
	var created models.Lesson
	if err := s.store.Create(ctx, collection, lesson, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update применяет данные формы к существующей записи и целиком заменяет ее.
// Привязка к курсу и автор урока не меняются.
func (s *Service) Update(ctx context.Context, id models.ID, form models.LessonForm) (*models.Lesson, error) {
	if err := validation.ValidateStruct(form); err != nil {
		return nil, err
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = form.Title
	existing.Status = models.LessonStatus(form.Status)
	existing.PublishDate = form.PublishDate
	existing.VideoURL = form.VideoURL

	var updated models.Lesson
	if err := s.store.Replace(ctx, collection, id.Canonical(), existing, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет урок по идентификатору.
func (s *Service) Delete(ctx context.Context, id models.ID) error {
	return s.store.Delete(ctx, collection, id.Canonical())
}
