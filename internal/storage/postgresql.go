// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей, займов и платежей. Предоставляет методы создания,
// чтения и удаления записей через database/sql поверх драйвера pgx.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запрошенная запись не существует
// или не принадлежит текущему пользователю.
var ErrNotFound = errors.New("not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'loans'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table loans missing or query error: %w", err)
	}
	return nil
}
