package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/loan-dashboard/internal/lib/loanmath"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// ErrInvalidInput возвращается, когда числовые поля формы не проходят
// проверку на уровне сервиса (например, неположительная сумма займа).
var ErrInvalidInput = errors.New("invalid input")

const cacheTTL = time.Hour

// LoanRepository определяет методы для работы с займами и платежами в хранилище.
type LoanRepository interface {
	// CreateLoan добавляет новый займ и возвращает сохранённую запись.
	CreateLoan(ctx context.Context, loan models.Loan) (*models.Loan, error)
	// ListLoans возвращает займы пользователя с вложенными платежами.
	ListLoans(ctx context.Context, userUID string) ([]models.Loan, error)
	// RemoveLoan удаляет займ по id и возвращает количество удалённых записей.
	RemoveLoan(ctx context.Context, id int64, userUID string) (int, error)
	// CreatePayment добавляет платёж по займу пользователя.
	CreatePayment(ctx context.Context, loanID int64, userUID string, payment models.Payment) (*models.Payment, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// LoanService реализует бизнес-логику работы с займами, включая кеширование
// списка займов пользователя и расчёт производных показателей.
type LoanService struct {
	repo  LoanRepository
	cache Cache
	log   *slog.Logger
}

// NewLoanService создает новый экземпляр LoanService.
func NewLoanService(repo LoanRepository, cache Cache, log *slog.Logger) *LoanService {
	return &LoanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func loansCacheKey(userUID string) string {
	return fmt.Sprintf("loans:%s", userUID)
}

// Create создает новый займ пользователя из данных формы.
// Сумма займа и ежемесячный платёж обязаны быть положительными числами,
// ставка по умолчанию 0, срок по умолчанию 12 месяцев, статус всегда active.
func (s *LoanService) Create(ctx context.Context, userUID string, req models.DummyLoan) (*models.Loan, error) {
	principal, err := strconv.ParseFloat(req.Principal, 64)
	if err != nil || principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be a positive number", ErrInvalidInput)
	}
	monthlyPayment, err := strconv.ParseFloat(req.MonthlyPayment, 64)
	if err != nil || monthlyPayment <= 0 {
		return nil, fmt.Errorf("%w: monthly payment must be a positive number", ErrInvalidInput)
	}
	interestRate, err := strconv.ParseFloat(req.InterestRate, 64)
	if err != nil || interestRate < 0 {
		interestRate = 0
	}
	tenure, err := strconv.Atoi(req.Tenure)
	if err != nil || tenure <= 0 {
		tenure = 12
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		startDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	loan := models.Loan{
		UserUID:        userUID,
		Name:           req.Name,
		Principal:      principal,
		InterestRate:   interestRate,
		MonthlyPayment: monthlyPayment,
		Tenure:         tenure,
		StartDate:      startDate,
		Category:       req.Category,
		Status:         models.StatusActive,
	}

	created, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new loan", slog.Int64("id", created.ID))

	if err := s.cache.Invalidate(loansCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate loans cache", sl.Err(err))
	}
	return created, nil
}

// List возвращает займы пользователя с рассчитанной суммой платежей,
// используя кеш или репозиторий. Сумма платежей всегда пересчитывается
// из вложенных платежей, отдельно она нигде не хранится.
func (s *LoanService) List(ctx context.Context, userUID string) ([]models.Loan, error) {
	cacheKey := loansCacheKey(userUID)

	var cached []models.Loan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read loans cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	loans, err := s.repo.ListLoans(ctx, userUID)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		loans[i].TotalPaid = loanmath.TotalPaid(loans[i].Payments)
	}

	if err := s.cache.Set(cacheKey, loans, cacheTTL); err != nil {
		s.log.Warn("failed to cache loans", slog.String("key", cacheKey), sl.Err(err))
	}
	return loans, nil
}

// Summary возвращает агрегаты по всем займам пользователя.
func (s *LoanService) Summary(ctx context.Context, userUID string) (models.PortfolioSummary, error) {
	loans, err := s.List(ctx, userUID)
	if err != nil {
		return models.PortfolioSummary{}, err
	}
	return loanmath.Aggregate(loans), nil
}

// RecordPayment записывает платёж по займу пользователя.
// Сумма платежа обязана быть положительным числом.
func (s *LoanService) RecordPayment(ctx context.Context, userUID string, loanID int64, req models.DummyPayment) (*models.Payment, error) {
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	payment := models.Payment{
		Amount: amount,
		Note:   req.Note,
	}
	created, err := s.repo.CreatePayment(ctx, loanID, userUID, payment)
	if err != nil {
		return nil, err
	}
	s.log.Info("recorded payment", slog.Int64("loan_id", loanID), slog.Int64("id", created.ID))

	if err := s.cache.Invalidate(loansCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate loans cache", sl.Err(err))
	}
	return created, nil
}

// Remove удаляет займ пользователя и возвращает количество удалённых записей.
func (s *LoanService) Remove(ctx context.Context, userUID string, loanID int64) (int, error) {
	count, err := s.repo.RemoveLoan(ctx, loanID, userUID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(loansCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate loans cache", sl.Err(err))
	}
	return count, nil
}
