package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его uid.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query, user.UID, user.Email, user.PasswordHash).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByEmail возвращает пользователя по email или ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, created_at
			  FROM users WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var user models.User
	if err := row.Scan(&user.UID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
