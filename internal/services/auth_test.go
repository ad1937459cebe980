package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/loan-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
	"github.com/magabrotheeeer/loan-dashboard/internal/storage"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MakerMock struct{ mock.Mock }

func (m *MakerMock) GenerateToken(email, userUID string) (string, error) {
	args := m.Called(email, userUID)
	return args.String(0), args.Error(1)
}
func (m *MakerMock) ParseToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	users := new(UserRepoMock)
	maker := new(MakerMock)
	svc := NewAuthService(users, maker)

	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		if u.Email != "user@example.com" || u.UID == "" {
			return false
		}
		// Пароль хранится хэшем, не открытым текстом.
		return u.PasswordHash != "secret123" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("uid-1", nil).Once()

	uid, err := svc.Register(context.Background(), "user@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	users.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("secret123")
	require.NoError(t, err)

	existing := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: hashed,
	}

	tests := []struct {
		name       string
		email      string
		pass       string
		setupMocks func(u *UserRepoMock, m *MakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:  "успешный вход",
			email: "user@example.com",
			pass:  "secret123",
			setupMocks: func(u *UserRepoMock, m *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").Return(existing, nil).Once()
				m.On("GenerateToken", "user@example.com", "uid-1").Return("token-abc", nil).Once()
			},
			wantToken: "token-abc",
		},
		{
			name:  "пользователь не найден",
			email: "missing@example.com",
			pass:  "secret123",
			setupMocks: func(u *UserRepoMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "missing@example.com").
					Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "неверный пароль",
			email: "user@example.com",
			pass:  "wrong",
			setupMocks: func(u *UserRepoMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").Return(existing, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			maker := new(MakerMock)
			svc := NewAuthService(users, maker)

			tt.setupMocks(users, maker)

			token, user, err := svc.Login(context.Background(), tt.email, tt.pass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, existing, user)
			}

			users.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}
