// Package auth содержит логику входа по почте и паролю.
//
// Хранилище записей не аутентифицирует само: вход — это поиск пользователя
// с совпадающей парой почта/пароль и выпуск токена сессии на стороне клиента.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-manager/internal/lib/token"
	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/recordstore"
)

// ErrInvalidCredentials — пара почта/пароль не подошла ни к одной записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserProvider описывает доступ к пользователям, нужный для входа.
type UserProvider interface {
	// GetByEmail возвращает пользователя с данной почтой или ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за проверку учетных данных и выпуск токена сессии.
type Service struct {
	users      UserProvider
	tokenMaker token.Maker
}

// New создает новый экземпляр Service.
func New(users UserProvider, tokenMaker token.Maker) *Service {
	return &Service{
		users:      users,
		tokenMaker: tokenMaker,
	}
}

// Login проверяет пару почта/пароль и возвращает пользователя с токеном
// сессии. Несовпадение пары — ErrInvalidCredentials, транспортные ошибки
// хранилища пробрасываются как есть.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.Login"
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if user.Password != password {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	sessionToken, err := s.tokenMaker.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, sessionToken, nil
}
