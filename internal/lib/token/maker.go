// Package token реализует генерацию и парсинг сессионных токенов
// с пользовательскими claim полями.
//
// Хранилище записей трактует токен как непрозрачную строку и никак его не
// проверяет; подпись и срок жизни проверяются на стороне клиента при
// восстановлении сессии.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/course-manager/internal/models"
)

// SessionClaims описывает пользовательские данные, хранящиеся в токене сессии.
type SessionClaims struct {
	UserID               string `json:"user_id"` // Канонический идентификатор пользователя
	Email                string `json:"email"`   // Электронная почта
	Role                 string `json:"role"`    // Роль пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создает токен для пользователя.
	GenerateToken(user *models.User) (string, error)
	// ParseToken возвращает *SessionClaims, если токен корректен.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает токен с идентификатором, почтой и ролью пользователя,
// подписывая его секретным ключом. Время жизни определяется полем tokenTTL.
func (m *MakerImpl) GenerateToken(user *models.User) (string, error) {
	claims := SessionClaims{
		UserID: user.ID.Canonical(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secretKey))
}

// ParseToken парсит токен, проверяет его подпись и срок жизни,
// возвращает SessionClaims с данными, если токен корректен.
func (m *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "token.ParseToken"
	t, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := t.Claims.(*SessionClaims)
	if !ok || !t.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
