// Package loanmath содержит чистые функции расчёта производных показателей займа:
// сумму платежей, прогресс погашения, остаток и агрегаты по портфелю.
package loanmath

import "github.com/magabrotheeeer/loan-dashboard/internal/models"

// TotalPaid суммирует платежи займа. Пустой список даёт 0.
func TotalPaid(payments []models.Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

// Progress возвращает процент погашения займа в диапазоне [0, 100].
// Переплата сверх суммы займа не увеличивает прогресс выше 100.
// Сумма займа всегда > 0 (проверяется при создании), на 0 возвращается 0.
func Progress(loan models.Loan) float64 {
	if loan.Principal <= 0 {
		return 0
	}
	progress := loan.TotalPaid / loan.Principal * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// Remaining возвращает непогашенный остаток займа, не ниже нуля.
// Переплата поглощается молча, отдельная запись о ней не ведётся.
func Remaining(loan models.Loan) float64 {
	remaining := loan.Principal - loan.TotalPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Aggregate сворачивает список займов в сводку по портфелю.
// MonthlyDue учитывает ежемесячные платежи только активных займов.
func Aggregate(loans []models.Loan) models.PortfolioSummary {
	var summary models.PortfolioSummary
	for _, loan := range loans {
		summary.TotalBorrowed += loan.Principal
		summary.TotalPaid += loan.TotalPaid
		summary.TotalRemaining += Remaining(loan)
		if loan.Status == models.StatusActive {
			summary.MonthlyDue += loan.MonthlyPayment
		}
	}
	return summary
}
