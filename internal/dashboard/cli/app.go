// Package cli реализует терминальный дашборд займов: авторизацию,
// вкладки overview и loans, формы добавления займа и записи платежа.
//
// Все операции выполняются последовательно в одном цикле команд:
// состояние вида изменяется только после подтверждённого ответа сервера.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/gateway"
	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/session"
	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/state"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/money"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// App — терминальный дашборд.
type App struct {
	in   *bufio.Reader
	out  io.Writer
	gw   *gateway.Client
	sess *session.Controller

	st state.State

	// lastFetchedUID подавляет повторную загрузку займов, когда сессия
	// не сменилась (восстановление и вход могут сработать подряд).
	lastFetchedUID string
}

// NewApp создает дашборд поверх шлюза и контроллера сессии.
func NewApp(gw *gateway.Client, sess *session.Controller) *App {
	return &App{
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
		gw:   gw,
		sess: sess,
		st:   state.New(),
	}
}

// Run восстанавливает сессию и запускает цикл команд.
func (a *App) Run(ctx context.Context) error {
	a.sess.Subscribe(func(s *gateway.Session) {
		a.onSessionChange(ctx, s)
	})

	fmt.Fprintln(a.out, "Loan Dashboard. Track your loan repayments.")
	fmt.Fprintln(a.out, "Loading...")
	a.sess.Restore(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if a.sess.Current() == nil {
			if done, err := a.runGuestCommand(ctx); done || err != nil {
				return err
			}
			continue
		}
		if done, err := a.runUserCommand(ctx); done || err != nil {
			return err
		}
	}
}

func (a *App) onSessionChange(ctx context.Context, s *gateway.Session) {
	if s == nil {
		a.st = state.ClearSession(a.st)
		a.lastFetchedUID = ""
		return
	}
	a.st = state.EstablishSession(a.st, s.Email)
	if s.UserUID == a.lastFetchedUID {
		return
	}
	a.refreshLoans(ctx)
	a.lastFetchedUID = s.UserUID
}

// refreshLoans заменяет список займов ответом сервера. Ошибка чтения
// не фатальна: список остаётся прежним, пользователю показывается
// уведомление.
func (a *App) refreshLoans(ctx context.Context) {
	loans, err := a.gw.FetchLoans(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load loans: %v\n", err)
		return
	}
	a.st = state.ReplaceLoans(a.st, loans)
}

func (a *App) runGuestCommand(ctx context.Context) (bool, error) {
	cmd, err := GetSimpleText(a.in, "Commands: login, register, quit", a.out)
	if err != nil {
		return true, err
	}
	switch cmd {
	case "login":
		a.login(ctx)
	case "register":
		a.register(ctx)
	case "quit", "exit":
		return true, nil
	case "":
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
	return false, nil
}

func (a *App) runUserCommand(ctx context.Context) (bool, error) {
	prompt := fmt.Sprintf("[%s | %s] Commands: overview, loans, add, pay <n>, delete <n>, logout, quit",
		a.st.Email, a.st.ActiveTab)
	line, err := GetSimpleText(a.in, prompt, a.out)
	if err != nil {
		return true, err
	}
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "overview":
		a.st = state.SwitchTab(a.st, state.TabOverview)
		renderOverview(a.out, a.st)
	case "loans":
		a.st = state.SwitchTab(a.st, state.TabLoans)
		renderLoans(a.out, a.st)
	case "add":
		a.addLoan(ctx)
	case "pay":
		a.recordPayment(ctx, arg)
	case "delete":
		a.deleteLoan(ctx, arg)
	case "logout":
		a.sess.SignOut()
		fmt.Fprintln(a.out, "Signed out.")
	case "quit", "exit":
		return true, nil
	case "":
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
	return false, nil
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return
	}
	if err := a.sess.SignIn(ctx, email, string(pw)); err != nil {
		// Текст ошибки провайдера показывается дословно.
		fmt.Fprintf(a.out, "Sign in failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", email)
	renderOverview(a.out, a.st)
}

func (a *App) register(ctx context.Context) {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return
	}
	message, err := a.sess.SignUp(ctx, email, string(pw))
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}
	// Информационное сообщение, а не ошибка: сессия ещё не установлена.
	fmt.Fprintf(a.out, "Info: %s\n", message)
}

func (a *App) addLoan(ctx context.Context) {
	a.st = state.OpenAddLoan(a.st)
	defer func() { a.st = state.CloseModal(a.st) }()

	fields := []struct {
		name  string
		label string
	}{
		{"name", "Loan name"},
		{"principal", "Principal (" + money.Symbol + ")"},
		{"interest_rate", "Interest rate (%)"},
		{"monthly_payment", "Monthly payment (" + money.Symbol + ")"},
		{"tenure", "Tenure (months)"},
		{"start_date", "Start date"},
		{"category", "Category (personal, business, mortgage, auto, education, other)"},
	}
	for _, f := range fields {
		value, err := GetTextWithDefault(a.in, f.label, loanFormValue(a.st.LoanForm, f.name), a.out)
		if err != nil {
			return
		}
		a.st = state.SetLoanField(a.st, f.name, value)
	}

	form := a.st.LoanForm
	loan, err := a.gw.CreateLoan(ctx, models.DummyLoan{
		Name:           form.Name,
		Principal:      form.Principal,
		InterestRate:   form.InterestRate,
		MonthlyPayment: form.MonthlyPayment,
		Tenure:         form.Tenure,
		StartDate:      form.StartDate,
		Category:       form.Category,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Could not add loan: %v\n", err)
		return
	}
	a.st = state.MergeCreatedLoan(a.st, *loan)
	fmt.Fprintf(a.out, "Added loan %q\n", loan.Name)
}

func (a *App) recordPayment(ctx context.Context, arg string) {
	loan, ok := a.loanByNumber(arg)
	if !ok {
		return
	}
	if loan.Status != models.StatusActive {
		fmt.Fprintln(a.out, "Payments can be recorded only on active loans.")
		return
	}

	a.st = state.OpenPayment(a.st, loan)
	defer func() { a.st = state.CloseModal(a.st) }()

	amount, err := GetTextWithDefault(a.in, "Amount", a.st.PaymentForm.Amount, a.out)
	if err != nil {
		return
	}
	a.st = state.SetPaymentField(a.st, "amount", amount)
	note, err := GetSimpleText(a.in, "Note (optional)", a.out)
	if err != nil {
		return
	}
	a.st = state.SetPaymentField(a.st, "note", note)

	payment, err := a.gw.RecordPayment(ctx, a.st.PaymentLoanID, models.DummyPayment{
		Amount: a.st.PaymentForm.Amount,
		Note:   a.st.PaymentForm.Note,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Could not record payment: %v\n", err)
		return
	}
	a.st = state.MergePayment(a.st, *payment)
	fmt.Fprintf(a.out, "Recorded payment on %q\n", loan.Name)
}

func (a *App) deleteLoan(ctx context.Context, arg string) {
	loan, ok := a.loanByNumber(arg)
	if !ok {
		return
	}
	confirmed, err := Confirm(a.in,
		fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", loan.Name), a.out)
	if err != nil || !confirmed {
		return
	}
	// Займ исключается из списка только после подтверждения сервером.
	if err := a.gw.DeleteLoan(ctx, loan.ID); err != nil {
		fmt.Fprintf(a.out, "Could not delete loan: %v\n", err)
		return
	}
	a.st = state.RemoveLoan(a.st, loan.ID)
	fmt.Fprintf(a.out, "Deleted loan %q\n", loan.Name)
}

func (a *App) loanByNumber(arg string) (models.Loan, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(a.st.Loans) {
		fmt.Fprintln(a.out, "Specify a loan number from the list, e.g. 'pay 1'.")
		return models.Loan{}, false
	}
	return a.st.Loans[n-1], true
}

// SetIO подменяет потоки ввода-вывода, используется в тестах.
func (a *App) SetIO(in io.Reader, out io.Writer) {
	a.in = bufio.NewReader(in)
	a.out = out
}

func loanFormValue(form state.LoanForm, field string) string {
	switch field {
	case "name":
		return form.Name
	case "principal":
		return form.Principal
	case "interest_rate":
		return form.InterestRate
	case "monthly_payment":
		return form.MonthlyPayment
	case "tenure":
		return form.Tenure
	case "start_date":
		return form.StartDate
	case "category":
		return form.Category
	}
	return ""
}
