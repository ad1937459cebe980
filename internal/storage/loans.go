package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// CreateLoan вставляет новый займ и возвращает сохранённую запись
// с присвоенным id и временем создания.
func (s *Storage) CreateLoan(ctx context.Context, loan models.Loan) (*models.Loan, error) {
	const op = "storage.CreateLoan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO loans (user_uid, name, principal, interest_rate,
				  monthly_payment, tenure, start_date, category, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at`
	err := s.DB.QueryRowContext(ctx, query,
		loan.UserUID, loan.Name, loan.Principal, loan.InterestRate,
		loan.MonthlyPayment, loan.Tenure, loan.StartDate, loan.Category,
		loan.Status).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	loan.Payments = []models.Payment{}
	return &loan, nil
}

// ListLoans возвращает все займы пользователя с вложенными платежами,
// отсортированные по времени создания от новых к старым.
func (s *Storage) ListLoans(ctx context.Context, userUID string) ([]models.Loan, error) {
	const op = "storage.ListLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, principal, interest_rate, monthly_payment,
				  tenure, start_date, category, status, created_at
			  FROM loans
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var loans []models.Loan
	index := make(map[int64]int)
	for rows.Next() {
		var item models.Loan
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Principal,
			&item.InterestRate, &item.MonthlyPayment, &item.Tenure, &item.StartDate,
			&item.Category, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Payments = []models.Payment{}
		index[item.ID] = len(loans)
		loans = append(loans, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payments, err := s.listPayments(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range payments {
		if i, ok := index[p.LoanID]; ok {
			loans[i].Payments = append(loans[i].Payments, p)
		}
	}
	return loans, nil
}

// RemoveLoan удаляет займ пользователя по id и возвращает количество
// удалённых строк. Платежи удаляются каскадно на уровне схемы.
func (s *Storage) RemoveLoan(ctx context.Context, id int64, userUID string) (int, error) {
	const op = "storage.RemoveLoan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM loans WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
