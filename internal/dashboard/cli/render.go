package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/state"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/loanmath"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/money"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

const progressBarWidth = 20

func progressBar(percent float64) string {
	filled := int(percent / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled) + "]"
}

// renderOverview печатает карточки агрегатов и активные займы с прогрессом.
func renderOverview(w io.Writer, st state.State) {
	summary := loanmath.Aggregate(st.Loans)
	fmt.Fprintln(w, "=== Overview ===")
	fmt.Fprintf(w, "Total Borrowed: %s\n", money.FormatCompact(summary.TotalBorrowed))
	fmt.Fprintf(w, "Total Paid:     %s\n", money.FormatCompact(summary.TotalPaid))
	fmt.Fprintf(w, "Outstanding:    %s\n", money.FormatCompact(summary.TotalRemaining))
	fmt.Fprintf(w, "Monthly Due:    %s\n", money.FormatCompact(summary.MonthlyDue))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Active Loans:")
	active := 0
	for i, loan := range st.Loans {
		if loan.Status != models.StatusActive {
			continue
		}
		active++
		progress := loanmath.Progress(loan)
		fmt.Fprintf(w, "%3d. %-20s %s %3.0f%% paid, %s remaining\n",
			i+1, loan.Name, progressBar(progress), progress,
			money.FormatCompact(loanmath.Remaining(loan)))
	}
	if active == 0 {
		fmt.Fprintln(w, "No active loans yet. Use 'add' to add your first loan.")
	}
}

// renderLoans печатает все займы с подробными суммами.
func renderLoans(w io.Writer, st state.State) {
	fmt.Fprintln(w, "=== Loans ===")
	if len(st.Loans) == 0 {
		fmt.Fprintln(w, "No loans yet. Use 'add' to start tracking.")
		return
	}
	for i, loan := range st.Loans {
		fmt.Fprintf(w, "%3d. %s (%s, %s)\n", i+1, loan.Name,
			models.CategoryLabel(loan.Category), loan.Status)
		fmt.Fprintf(w, "     Progress: %s %.1f%%\n", progressBar(loanmath.Progress(loan)), loanmath.Progress(loan))
		fmt.Fprintf(w, "     Principal: %s  Monthly: %s  Paid: %s  Remaining: %s\n",
			money.FormatCurrency(loan.Principal),
			money.FormatCurrency(loan.MonthlyPayment),
			money.FormatCurrency(loan.TotalPaid),
			money.FormatCurrency(loanmath.Remaining(loan)))
	}
}
