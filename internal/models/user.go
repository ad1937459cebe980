// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи и хэш пароля.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Uid пользователя ограничивает выборку всех его займов.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта, используется для входа
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}
