// Package gateway реализует клиент HTTP API займов и платежей.
//
// Ошибки шлюза разделены по источнику: AuthError — отказ провайдера
// аутентификации (текст показывается пользователю дословно),
// DataFetchError — сбой чтения данных, WriteError — сбой записи,
// ValidationError — поля формы не прошли проверку до отправки запроса.
// Ни одна из них не приводит к падению процесса: вызывающая сторона
// обязана обработать результат и оставить состояние неизменным.
package gateway

import "fmt"

// AuthError — ошибка входа или регистрации. Message содержит
// сообщение сервера без изменений.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// DataFetchError — ошибка чтения списка займов.
type DataFetchError struct {
	Err error
}

func (e *DataFetchError) Error() string { return fmt.Sprintf("fetch loans: %v", e.Err) }
func (e *DataFetchError) Unwrap() error { return e.Err }

// WriteError — ошибка создания займа, записи платежа или удаления займа.
// Локальное состояние при такой ошибке не изменяется.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// ValidationError — поле формы не прошло проверку. Запрос при этом
// не отправляется.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("field %s: %s", e.Field, e.Reason) }
