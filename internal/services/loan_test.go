package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

type LoanRepoMock struct{ mock.Mock }

func (m *LoanRepoMock) CreateLoan(ctx context.Context, loan models.Loan) (*models.Loan, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}
func (m *LoanRepoMock) ListLoans(ctx context.Context, userUID string) ([]models.Loan, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}
func (m *LoanRepoMock) RemoveLoan(ctx context.Context, id int64, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *LoanRepoMock) CreatePayment(ctx context.Context, loanID int64, userUID string, payment models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, loanID, userUID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoanService_Create(t *testing.T) {
	validReq := models.DummyLoan{
		Name:           "Car loan",
		Principal:      "500000",
		InterestRate:   "15",
		MonthlyPayment: "50000",
		Tenure:         "24",
		StartDate:      "2026-01-15",
		Category:       "auto",
	}

	tests := []struct {
		name       string
		req        models.DummyLoan
		setupMocks func(r *LoanRepoMock, c *CacheMock)
		check      func(t *testing.T, loan *models.Loan, err error)
	}{
		{
			name: "успешное создание",
			req:  validReq,
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("CreateLoan", mock.Anything, mock.MatchedBy(func(l models.Loan) bool {
					return l.UserUID == "uid-1" &&
						l.Name == "Car loan" &&
						l.Principal == 500000 &&
						l.InterestRate == 15 &&
						l.MonthlyPayment == 50000 &&
						l.Tenure == 24 &&
						l.Status == models.StatusActive
				})).Return(&models.Loan{ID: 42, Name: "Car loan"}, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(nil).Once()
			},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), loan.ID)
			},
		},
		{
			name: "неположительная сумма займа",
			req: models.DummyLoan{
				Name:           "Bad",
				Principal:      "0",
				MonthlyPayment: "1000",
				Category:       "personal",
			},
			setupMocks: func(_ *LoanRepoMock, _ *CacheMock) {},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, loan)
			},
		},
		{
			name: "неположительный ежемесячный платёж",
			req: models.DummyLoan{
				Name:           "Bad",
				Principal:      "1000",
				MonthlyPayment: "-5",
				Category:       "personal",
			},
			setupMocks: func(_ *LoanRepoMock, _ *CacheMock) {},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, loan)
			},
		},
		{
			name: "дефолты: ставка 0, срок 12, статус active",
			req: models.DummyLoan{
				Name:           "Defaults",
				Principal:      "100000",
				MonthlyPayment: "10000",
				InterestRate:   "",
				Tenure:         "",
				StartDate:      "",
				Category:       "personal",
			},
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("CreateLoan", mock.Anything, mock.MatchedBy(func(l models.Loan) bool {
					return l.InterestRate == 0 &&
						l.Tenure == 12 &&
						l.Status == models.StatusActive &&
						!l.StartDate.IsZero()
				})).Return(&models.Loan{ID: 7}, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(nil).Once()
			},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), loan.ID)
			},
		},
		{
			name: "ошибка кеша не мешает созданию",
			req:  validReq,
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("CreateLoan", mock.Anything, mock.Anything).Return(&models.Loan{ID: 8}, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(errors.New("redis down")).Once()
			},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(8), loan.ID)
			},
		},
		{
			name: "ошибка репозитория",
			req:  validReq,
			setupMocks: func(r *LoanRepoMock, _ *CacheMock) {
				r.On("CreateLoan", mock.Anything, mock.Anything).Return(nil, errors.New("database error")).Once()
			},
			check: func(t *testing.T, loan *models.Loan, err error) {
				assert.Error(t, err)
				assert.Nil(t, loan)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(LoanRepoMock)
			cache := new(CacheMock)
			svc := NewLoanService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			loan, err := svc.Create(context.Background(), "uid-1", tt.req)
			tt.check(t, loan, err)

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestLoanService_List(t *testing.T) {
	loans := []models.Loan{
		{
			ID:        1,
			Principal: 100000,
			Payments:  []models.Payment{{Amount: 30000}, {Amount: 20000}},
		},
	}

	tests := []struct {
		name       string
		setupMocks func(r *LoanRepoMock, c *CacheMock)
		check      func(t *testing.T, got []models.Loan, err error)
	}{
		{
			name: "попадание в кеш",
			setupMocks: func(_ *LoanRepoMock, c *CacheMock) {
				c.On("Get", "loans:uid-1", mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
					ptr := args.Get(1).(*[]models.Loan)
					*ptr = loans
				}).Once()
			},
			check: func(t *testing.T, got []models.Loan, err error) {
				assert.NoError(t, err)
				assert.Equal(t, loans, got)
			},
		},
		{
			name: "промах кеша: чтение из репозитория и пересчёт total_paid",
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				c.On("Get", "loans:uid-1", mock.Anything).Return(false, nil).Once()
				r.On("ListLoans", mock.Anything, "uid-1").Return(loans, nil).Once()
				c.On("Set", "loans:uid-1", mock.Anything, time.Hour).Return(nil).Once()
			},
			check: func(t *testing.T, got []models.Loan, err error) {
				assert.NoError(t, err)
				assert.Len(t, got, 1)
				assert.Equal(t, 50000.0, got[0].TotalPaid)
			},
		},
		{
			name: "ошибка кеша не фатальна",
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				c.On("Get", "loans:uid-1", mock.Anything).Return(false, errors.New("cache fail")).Once()
				r.On("ListLoans", mock.Anything, "uid-1").Return(loans, nil).Once()
				c.On("Set", "loans:uid-1", mock.Anything, time.Hour).Return(nil).Once()
			},
			check: func(t *testing.T, got []models.Loan, err error) {
				assert.NoError(t, err)
				assert.Len(t, got, 1)
			},
		},
		{
			name: "ошибка репозитория",
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				c.On("Get", "loans:uid-1", mock.Anything).Return(false, nil).Once()
				r.On("ListLoans", mock.Anything, "uid-1").Return(nil, errors.New("database error")).Once()
			},
			check: func(t *testing.T, got []models.Loan, err error) {
				assert.Error(t, err)
				assert.Nil(t, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(LoanRepoMock)
			cache := new(CacheMock)
			svc := NewLoanService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.List(context.Background(), "uid-1")
			tt.check(t, got, err)

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestLoanService_Summary(t *testing.T) {
	repo := new(LoanRepoMock)
	cache := new(CacheMock)
	svc := NewLoanService(repo, cache, newNoopLogger())

	cache.On("Get", "loans:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("ListLoans", mock.Anything, "uid-1").Return([]models.Loan{
		{
			Principal:      500000,
			MonthlyPayment: 50000,
			Status:         models.StatusActive,
			Payments:       []models.Payment{{Amount: 100000}},
		},
		{
			Principal:      300000,
			MonthlyPayment: 30000,
			Status:         models.StatusClosed,
			Payments:       []models.Payment{{Amount: 300000}},
		},
	}, nil).Once()
	cache.On("Set", "loans:uid-1", mock.Anything, time.Hour).Return(nil).Once()

	summary, err := svc.Summary(context.Background(), "uid-1")

	assert.NoError(t, err)
	assert.Equal(t, 800000.0, summary.TotalBorrowed)
	assert.Equal(t, 400000.0, summary.TotalPaid)
	assert.Equal(t, 400000.0, summary.TotalRemaining)
	assert.Equal(t, 50000.0, summary.MonthlyDue)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestLoanService_RecordPayment(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyPayment
		setupMocks func(r *LoanRepoMock, c *CacheMock)
		check      func(t *testing.T, payment *models.Payment, err error)
	}{
		{
			name: "успешная запись платежа",
			req:  models.DummyPayment{Amount: "20000", Note: "august"},
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("CreatePayment", mock.Anything, int64(1), "uid-1", mock.MatchedBy(func(p models.Payment) bool {
					return p.Amount == 20000 && p.Note == "august"
				})).Return(&models.Payment{ID: 10, LoanID: 1, Amount: 20000}, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(nil).Once()
			},
			check: func(t *testing.T, payment *models.Payment, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(10), payment.ID)
			},
		},
		{
			name:       "нулевая сумма",
			req:        models.DummyPayment{Amount: "0"},
			setupMocks: func(_ *LoanRepoMock, _ *CacheMock) {},
			check: func(t *testing.T, payment *models.Payment, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, payment)
			},
		},
		{
			name:       "не число",
			req:        models.DummyPayment{Amount: "abc"},
			setupMocks: func(_ *LoanRepoMock, _ *CacheMock) {},
			check: func(t *testing.T, payment *models.Payment, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, payment)
			},
		},
		{
			name: "ошибка репозитория",
			req:  models.DummyPayment{Amount: "20000"},
			setupMocks: func(r *LoanRepoMock, _ *CacheMock) {
				r.On("CreatePayment", mock.Anything, int64(1), "uid-1", mock.Anything).
					Return(nil, errors.New("not found")).Once()
			},
			check: func(t *testing.T, payment *models.Payment, err error) {
				assert.Error(t, err)
				assert.Nil(t, payment)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(LoanRepoMock)
			cache := new(CacheMock)
			svc := NewLoanService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			payment, err := svc.RecordPayment(context.Background(), "uid-1", 1, tt.req)
			tt.check(t, payment, err)

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestLoanService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *LoanRepoMock, c *CacheMock)
		wantCount  int
		wantErr    bool
	}{
		{
			name: "успешное удаление",
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("RemoveLoan", mock.Anything, int64(1), "uid-1").Return(1, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "займ не найден",
			setupMocks: func(r *LoanRepoMock, c *CacheMock) {
				r.On("RemoveLoan", mock.Anything, int64(1), "uid-1").Return(0, nil).Once()
				c.On("Invalidate", "loans:uid-1").Return(nil).Once()
			},
			wantCount: 0,
		},
		{
			name: "ошибка репозитория",
			setupMocks: func(r *LoanRepoMock, _ *CacheMock) {
				r.On("RemoveLoan", mock.Anything, int64(1), "uid-1").Return(0, errors.New("database error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(LoanRepoMock)
			cache := new(CacheMock)
			svc := NewLoanService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			count, err := svc.Remove(context.Background(), "uid-1", 1)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
