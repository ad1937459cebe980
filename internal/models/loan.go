// Package models содержит доменные структуры займа и платежа,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы займа. Платёж можно записать только по активному займу,
// monthly due в сводке учитывает только активные займы.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Loan представляет один займ пользователя.
//
// TotalPaid — производное поле: сумма платежей займа на момент чтения.
// Оно никогда не хранится в базе и пересчитывается при каждой выборке.
type Loan struct {
	ID             int64     `json:"id"`              // Идентификатор займа
	UserUID        string    `json:"user_uid"`        // Владелец займа
	Name           string    `json:"name"`            // Название займа
	Principal      float64   `json:"principal"`       // Сумма займа
	InterestRate   float64   `json:"interest_rate"`   // Процентная ставка
	MonthlyPayment float64   `json:"monthly_payment"` // Ежемесячный платёж
	Tenure         int       `json:"tenure"`          // Срок займа в месяцах
	StartDate      time.Time `json:"start_date"`      // Дата начала выплат
	Category       string    `json:"category"`        // Категория займа
	Status         string    `json:"status"`          // Статус: active или closed
	CreatedAt      time.Time `json:"created_at"`      // Время создания записи
	Payments       []Payment `json:"payments"`        // Платежи по займу
	TotalPaid      float64   `json:"total_paid"`      // Сумма платежей (производное поле)
}

// Payment представляет один платёж по займу. После создания не изменяется.
type Payment struct {
	ID        int64     `json:"id"`         // Идентификатор платежа
	LoanID    int64     `json:"loan_id"`    // Займ, к которому относится платёж
	Amount    float64   `json:"amount"`     // Сумма платежа
	Note      string    `json:"note"`       // Необязательная заметка
	CreatedAt time.Time `json:"created_at"` // Время создания записи
}

// DummyLoan используется для приёма данных формы из JSON-запроса.
// Числовые поля приходят строками, как их вводит пользователь,
// и парсятся с дефолтами на стороне сервиса.
type DummyLoan struct {
	Name           string `json:"name" validate:"required"`                                                          // Название займа
	Principal      string `json:"principal" validate:"required,numeric"`                                             // Сумма займа (>0)
	InterestRate   string `json:"interest_rate"`                                                                     // Ставка, по умолчанию 0
	MonthlyPayment string `json:"monthly_payment" validate:"required,numeric"`                                       // Ежемесячный платёж (>0)
	Tenure         string `json:"tenure"`                                                                            // Срок в месяцах, по умолчанию 12
	StartDate      string `json:"start_date"`                                                                        // Дата начала в формате 2006-01-02
	Category       string `json:"category" validate:"required,oneof=personal business mortgage auto education other"` // Категория
}

// DummyPayment используется для приёма данных формы платежа из JSON-запроса.
type DummyPayment struct {
	Amount string `json:"amount" validate:"required,numeric"` // Сумма платежа (>0)
	Note   string `json:"note"`                               // Необязательная заметка
}

// PortfolioSummary содержит агрегаты по всем займам пользователя.
type PortfolioSummary struct {
	TotalBorrowed  float64 `json:"total_borrowed"`  // Сумма всех займов
	TotalPaid      float64 `json:"total_paid"`      // Сумма всех платежей
	TotalRemaining float64 `json:"total_remaining"` // Непогашенный остаток
	MonthlyDue     float64 `json:"monthly_due"`     // Ежемесячные платежи по активным займам
}
