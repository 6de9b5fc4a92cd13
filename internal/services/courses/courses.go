// Package courses содержит типизированные операции над коллекцией courses
// хранилища записей, включая работу со списком инструкторов.
package courses

import (
	"context"
	"errors"
	"fmt"

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

const collection = "courses"

// Service реализует операции над курсами.
type Service struct {
	store RecordStore
}

// New создает новый экземпляр Service.
func New(store RecordStore) *Service {
	return &Service{store: store}
}

// List возвращает все курсы.
func (s *Service) List(ctx context.Context) ([]models.Course, error) {
	var result []models.Course
	if err := s.store.List(ctx, collection, recordstore.NewQuery(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID возвращает курс по идентификатору.
func (s *Service) GetByID(ctx context.Context, id models.ID) (*models.Course, error) {
	var course models.Course
	if err := s.store.Get(ctx, collection, id.Canonical(), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListByUser возвращает курсы, где пользователь — создатель или инструктор.
// Хранилище не умеет дизъюнкцию фильтров, поэтому выполняются два запроса,
// результат сливается без дублей.
func (s *Service) ListByUser(ctx context.Context, userID models.ID) ([]models.Course, error) {
	var created []models.Course
	q := recordstore.NewQuery().Eq("creator_id", userID.Canonical())
	if err := s.store.List(ctx, collection, q, &created); err != nil {
		return nil, err
	}

	var teaching []models.Course
	q = recordstore.NewQuery().Contains("instructors", userID.Canonical())
	if err := s.store.List(ctx, collection, q, &teaching); err != nil {
		return nil, err
	}

	result := created
	for _, course := range teaching {
		duplicate := false
		for _, seen := range result {
			if models.SameID(seen.ID, course.ID) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, course)
		}
	}
	return result, nil
}

// Create создает курс. Создатель становится владельцем и первым инструктором.
func (s *Service) Create(ctx context.Context, creatorID models.ID, form models.CourseForm) (*models.Course, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	course := models.Course{
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		CreatorID:   creatorID,
		Instructors: []models.ID{creatorID},
	}
	var created models.Course
	if err := s.store.Create(ctx, collection, course, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update применяет данные формы к существующей записи и целиком заменяет ее.
// Создатель и список инструкторов при этом сохраняются.
func (s *Service) Update(ctx context.Context, id models.ID, form models.CourseForm) (*models.Course, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = form.Name
	existing.Description = form.Description
	existing.StartDate = form.StartDate
	existing.EndDate = form.EndDate

	var updated models.Course
	if err := s.store.Replace(ctx, collection, id.Canonical(), existing, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет курс по идентификатору.
func (s *Service) Delete(ctx context.Context, id models.ID) error {
	return s.store.Delete(ctx, collection, id.Canonical())
}

// AddInstructor добавляет пользователя в список инструкторов курса.
// Повторное добавление — no-op. Запись заменяется целиком: параллельное
// редактирование той же записи другим администратором может потерять его
// изменения, это известное ограничение хранилища.
func (s *Service) AddInstructor(ctx context.Context, courseID, instructorID models.ID) (*models.Course, error) {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if models.ContainsID(course.Instructors, instructorID) {
		return course, nil
	}
	course.Instructors = append(course.Instructors, instructorID)

	var updated models.Course
	if err := s.store.Replace(ctx, collection, courseID.Canonical(), course, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveInstructor убирает пользователя из списка инструкторов курса.
// Удаление отсутствующего инструктора — no-op.
func (s *Service) RemoveInstructor(ctx context.Context, courseID, instructorID models.ID) (*models.Course, error) {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !models.ContainsID(course.Instructors, instructorID) {
		return course, nil
	}
	remaining := make([]models.ID, 0, len(course.Instructors))
	for _, id := range course.Instructors {
		if !models.SameID(id, instructorID) {
			remaining = append(remaining, id)
		}
	}
	course.Instructors = remaining

	var updated models.Course
	if err := s.store.Replace(ctx, collection, courseID.Canonical(), course, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func validateForm(form models.CourseForm) error {
	const op = "courses.validateForm"
	if err := validation.ValidateStruct(form); err != nil {
		return err
	}
	if msg := validation.ValidateCourseDates(form.StartDate, form.EndDate); msg != "" {
		return fmt.Errorf("%s: %w", op, errors.New(msg))
	}
	return nil
}
