package middlewarectx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/loan-dashboard/internal/lib/jwt"
)

// MockParser реализует интерфейс TokenParser
type MockParser struct {
	mock.Mock
}

func (m *MockParser) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockParser)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			setupMock:      func(_ *MockParser) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Token abc",
			setupMock:      func(_ *MockParser) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "недействительный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockParser) {
				m.On("ParseToken", "bad-token").Return(nil, errors.New("token expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "валидный токен добавляет email и uid в контекст",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockParser) {
				m.On("ParseToken", "good-token").Return(&jwt.CustomClaims{
					Email:   "user@example.com",
					UserUID: "uid-1",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(MockParser)
			tt.setupMock(parser)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "user@example.com", r.Context().Value(User))
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			JWTMiddleware(parser, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			parser.AssertExpectations(t)
		})
	}
}
