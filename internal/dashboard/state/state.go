// Package state описывает состояние вида дашборда как неизменяемое значение
// и набор чистых функций-переходов.
//
// Каждая функция принимает состояние по значению и возвращает новое:
// прежнее значение не изменяется, поэтому переходы проверяются тестами
// без отрисовки. Список займов заменяется или дополняется только
// подтверждёнными ответами сервера, локальный пересчёт без подтверждения
// не выполняется.
package state

import (
	"strconv"
	"time"

	"github.com/magabrotheeeer/loan-dashboard/internal/lib/loanmath"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// Tab — активная вкладка дашборда.
type Tab string

// Вкладки дашборда.
const (
	TabOverview Tab = "overview"
	TabLoans    Tab = "loans"
)

// Modal — открытое модальное окно. Одновременно открыто не больше одного.
type Modal int

// Состояния модального окна.
const (
	ModalNone Modal = iota
	ModalAddLoan
	ModalPayment
)

// LoanForm — поля формы нового займа, как их вводит пользователь.
type LoanForm struct {
	Name           string
	Principal      string
	InterestRate   string
	MonthlyPayment string
	Tenure         string
	StartDate      string
	Category       string
}

// NewLoanForm возвращает форму займа с дефолтами: срок 12 месяцев,
// дата начала — сегодня, категория personal.
func NewLoanForm() LoanForm {
	return LoanForm{
		Tenure:    "12",
		StartDate: time.Now().Format("2006-01-02"),
		Category:  "personal",
	}
}

// PaymentForm — поля формы платежа.
type PaymentForm struct {
	Amount string
	Note   string
}

// State — полное состояние вида дашборда.
type State struct {
	Email         string
	Loans         []models.Loan
	ActiveTab     Tab
	Modal         Modal
	PaymentLoanID int64
	LoanForm      LoanForm
	PaymentForm   PaymentForm
}

// New возвращает начальное состояние неавторизованного дашборда.
func New() State {
	return State{
		ActiveTab: TabOverview,
		LoanForm:  NewLoanForm(),
	}
}

// EstablishSession устанавливает пользователя сессии.
func EstablishSession(s State, email string) State {
	s.Email = email
	return s
}

// ClearSession сбрасывает состояние к неавторизованному: пользователь,
// займы, вкладка и формы возвращаются к начальным значениям.
func ClearSession(State) State {
	return New()
}

// SwitchTab переключает активную вкладку.
func SwitchTab(s State, tab Tab) State {
	s.ActiveTab = tab
	return s
}

// OpenAddLoan открывает форму нового займа, если не открыто другое окно.
func OpenAddLoan(s State) State {
	if s.Modal != ModalNone {
		return s
	}
	s.Modal = ModalAddLoan
	s.LoanForm = NewLoanForm()
	return s
}

// OpenPayment открывает форму платежа по займу. Сумма заполняется
// ежемесячным платёжом займа и может быть изменена до отправки.
func OpenPayment(s State, loan models.Loan) State {
	if s.Modal != ModalNone {
		return s
	}
	s.Modal = ModalPayment
	s.PaymentLoanID = loan.ID
	s.PaymentForm = PaymentForm{
		Amount: strconv.FormatFloat(loan.MonthlyPayment, 'f', -1, 64),
	}
	return s
}

// CloseModal закрывает открытое модальное окно и очищает его форму.
func CloseModal(s State) State {
	s.Modal = ModalNone
	s.PaymentLoanID = 0
	s.LoanForm = NewLoanForm()
	s.PaymentForm = PaymentForm{}
	return s
}

// ReplaceLoans заменяет список займов подтверждённым ответом сервера.
func ReplaceLoans(s State, loans []models.Loan) State {
	s.Loans = loans
	return s
}

// MergeCreatedLoan добавляет созданный сервером займ в начало списка
// и закрывает форму.
func MergeCreatedLoan(s State, loan models.Loan) State {
	loans := make([]models.Loan, 0, len(s.Loans)+1)
	loans = append(loans, loan)
	loans = append(loans, s.Loans...)
	s.Loans = loans
	return CloseModal(s)
}

// MergePayment добавляет подтверждённый сервером платёж к займу,
// пересчитывает сумму платежей из списка и закрывает форму.
func MergePayment(s State, payment models.Payment) State {
	loans := make([]models.Loan, len(s.Loans))
	copy(loans, s.Loans)
	for i := range loans {
		if loans[i].ID != payment.LoanID {
			continue
		}
		payments := make([]models.Payment, 0, len(loans[i].Payments)+1)
		payments = append(payments, loans[i].Payments...)
		payments = append(payments, payment)
		loans[i].Payments = payments
		loans[i].TotalPaid = loanmath.TotalPaid(payments)
	}
	s.Loans = loans
	return CloseModal(s)
}

// RemoveLoan исключает удалённый займ из списка. Вызывается только после
// подтверждения удаления сервером.
func RemoveLoan(s State, loanID int64) State {
	loans := make([]models.Loan, 0, len(s.Loans))
	for _, loan := range s.Loans {
		if loan.ID != loanID {
			loans = append(loans, loan)
		}
	}
	s.Loans = loans
	return s
}

// SetLoanField обновляет одно поле формы займа.
func SetLoanField(s State, field, value string) State {
	switch field {
	case "name":
		s.LoanForm.Name = value
	case "principal":
		s.LoanForm.Principal = value
	case "interest_rate":
		s.LoanForm.InterestRate = value
	case "monthly_payment":
		s.LoanForm.MonthlyPayment = value
	case "tenure":
		s.LoanForm.Tenure = value
	case "start_date":
		s.LoanForm.StartDate = value
	case "category":
		s.LoanForm.Category = value
	}
	return s
}

// SetPaymentField обновляет одно поле формы платежа.
func SetPaymentField(s State, field, value string) State {
	switch field {
	case "amount":
		s.PaymentForm.Amount = value
	case "note":
		s.PaymentForm.Note = value
	}
	return s
}
