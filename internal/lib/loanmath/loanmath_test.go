package loanmath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

func TestTotalPaid(t *testing.T) {
	tests := []struct {
		name     string
		payments []models.Payment
		want     float64
	}{
		{
			name:     "пустой список платежей",
			payments: nil,
			want:     0,
		},
		{
			name: "несколько платежей",
			payments: []models.Payment{
				{Amount: 30000},
				{Amount: 20000},
			},
			want: 50000,
		},
		{
			name: "один платёж",
			payments: []models.Payment{
				{Amount: 12500.50},
			},
			want: 12500.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPaid(tt.payments))
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		loan models.Loan
		want float64
	}{
		{
			name: "без платежей",
			loan: models.Loan{Principal: 100000, TotalPaid: 0},
			want: 0,
		},
		{
			name: "половина выплачена",
			loan: models.Loan{Principal: 100000, TotalPaid: 50000},
			want: 50,
		},
		{
			name: "переплата не превышает 100",
			loan: models.Loan{Principal: 100000, TotalPaid: 150000},
			want: 100,
		},
		{
			name: "нулевая сумма займа",
			loan: models.Loan{Principal: 0, TotalPaid: 1000},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.loan)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name string
		loan models.Loan
		want float64
	}{
		{
			name: "остаток после платежей",
			loan: models.Loan{Principal: 100000, TotalPaid: 30000},
			want: 70000,
		},
		{
			name: "переплата даёт ноль, не отрицательное",
			loan: models.Loan{Principal: 100000, TotalPaid: 120000},
			want: 0,
		},
		{
			name: "полностью погашен",
			loan: models.Loan{Principal: 100000, TotalPaid: 100000},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(tt.loan)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

// Платёж 20000 по займу 100000 с уже выплаченными 30000:
// выплачено 50000, остаток 50000, прогресс 50%.
func TestDerivedFigures_AfterPayment(t *testing.T) {
	loan := models.Loan{
		Principal: 100000,
		Payments: []models.Payment{
			{Amount: 30000},
			{Amount: 20000},
		},
	}
	loan.TotalPaid = TotalPaid(loan.Payments)

	assert.Equal(t, 50000.0, loan.TotalPaid)
	assert.Equal(t, 50000.0, Remaining(loan))
	assert.Equal(t, 50.0, Progress(loan))
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		loans []models.Loan
		want  models.PortfolioSummary
	}{
		{
			name:  "пустой портфель даёт нули",
			loans: nil,
			want:  models.PortfolioSummary{},
		},
		{
			name: "monthly due только по активным займам",
			loans: []models.Loan{
				{Principal: 500000, MonthlyPayment: 50000, TotalPaid: 100000, Status: models.StatusActive},
				{Principal: 300000, MonthlyPayment: 30000, TotalPaid: 300000, Status: models.StatusClosed},
			},
			want: models.PortfolioSummary{
				TotalBorrowed:  800000,
				TotalPaid:      400000,
				TotalRemaining: 400000,
				MonthlyDue:     50000,
			},
		},
		{
			name: "переплата не уменьшает остаток других займов",
			loans: []models.Loan{
				{Principal: 100000, TotalPaid: 150000, Status: models.StatusActive},
				{Principal: 200000, TotalPaid: 0, Status: models.StatusActive},
			},
			want: models.PortfolioSummary{
				TotalBorrowed:  300000,
				TotalPaid:      150000,
				TotalRemaining: 200000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.loans))
		})
	}
}
