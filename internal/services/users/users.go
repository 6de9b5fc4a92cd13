// Package users содержит типизированные операции над коллекцией users
// хранилища записей.
package users

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
	Patch(ctx context.Context, collection, id string, body, out any) error
	Delete(ctx context.Context, collection, id string) error
}

const collection = "users"

// Service реализует операции над пользователями.
type Service struct {
	store RecordStore
}

// New создает новый экземпляр Service.
func New(store RecordStore) *Service {
	return &Service{store: store}
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var result []models.User
	if err := s.store.List(ctx, collection, recordstore.NewQuery(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID возвращает пользователя по идентификатору.
func (s *Service) GetByID(ctx context.Context, id models.ID) (*models.User, error) {
	var user models.User
	if err := s.store.Get(ctx, collection, id.Canonical(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя с данной почтой или ErrNotFound.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "users.GetByEmail"
	var result []models.User
	q := recordstore.NewQuery().Eq("email", email)
	if err := s.store.List(ctx, collection, q, &result); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", op, recordstore.ErrNotFound)
	}
	return &result[0], nil
}

// Register создает нового пользователя по данным формы регистрации.
// Почта должна быть свободна; проверка занятости требует ответа хранилища,
// транспортная ошибка прерывает регистрацию.
func (s *Service) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	const op = "users.Register"
	if err := validation.ValidateStruct(form); err != nil {
		return nil, err
	}
	_, err := s.GetByEmail(ctx, form.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: email already registered", op)
	case !errors.Is(err, recordstore.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Avatar:   form.Avatar,
		Role:     form.Role,
	}
	var created models.User
	if err := s.store.Create(ctx, collection, user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update сливает присланные поля с записью пользователя.
func (s *Service) Update(ctx context.Context, id models.ID, fields map[string]any) (*models.User, error) {
	var updated models.User
	if err := s.store.Patch(ctx, collection, id.Canonical(), fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет пользователя по идентификатору.
func (s *Service) Delete(ctx context.Context, id models.ID) error {
	return s.store.Delete(ctx, collection, id.Canonical())
}
