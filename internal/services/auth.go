// Package services содержит бизнес-логику аутентификации и управления займами.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/loan-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Текст ошибки одинаковый для несуществующего пользователя и неверного
// пароля, чтобы не раскрывать, какой email зарегистрирован.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его uid.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.UID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
