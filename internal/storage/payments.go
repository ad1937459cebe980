package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// CreatePayment вставляет платёж по займу пользователя и возвращает
// сохранённую запись. Если займ не существует или принадлежит другому
// пользователю, возвращает ErrNotFound.
func (s *Storage) CreatePayment(ctx context.Context, loanID int64, userUID string, payment models.Payment) (*models.Payment, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (loan_id, amount, note)
			  SELECT $1, $2, $3
			  WHERE EXISTS (SELECT 1 FROM loans WHERE id = $1 AND user_uid = $4)
			  RETURNING id, created_at`
	payment.LoanID = loanID
	err := s.DB.QueryRowContext(ctx, query,
		loanID, payment.Amount, payment.Note, userUID).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payment, nil
}

// listPayments возвращает все платежи по займам пользователя
// в порядке создания.
func (s *Storage) listPayments(ctx context.Context, userUID string) ([]models.Payment, error) {
	const op = "storage.listPayments"

	query := `SELECT p.id, p.loan_id, p.amount, p.note, p.created_at
			  FROM payments p
			  JOIN loans l ON l.id = p.loan_id
			  WHERE l.user_uid = $1
			  ORDER BY p.created_at, p.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.LoanID, &item.Amount, &item.Note, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
