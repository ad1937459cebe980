package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// Session — установленная сессия пользователя.
type Session struct {
	Email   string
	UserUID string
	Token   string
}

// Client — HTTP-клиент API дашборда. Токен сессии хранится в клиенте
// и подставляется в заголовок Authorization каждого запроса.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// New создает клиент для API по указанному базовому адресу.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken устанавливает токен сессии. Пустой токен сбрасывает сессию:
// ответы на запросы, запущенные до сброса, будут отклонены сервером.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

// do выполняет запрос и раскрывает конверт ответа. Возвращает ошибку
// с текстом сервера, если статус ответа не OK.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	const op = "gateway.do"

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if env.Status != "OK" {
		return fmt.Errorf("%s", env.Error)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// SignUp регистрирует пользователя и возвращает информационное сообщение
// сервера. Сессия при регистрации не устанавливается.
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	var data struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/register", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return "", &AuthError{Message: err.Error()}
	}
	return data.Message, nil
}

// SignIn выполняет вход и устанавливает токен сессии в клиенте.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var data struct {
		Token   string `json:"token"`
		Email   string `json:"email"`
		UserUID string `json:"user_uid"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/login", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return nil, &AuthError{Message: err.Error()}
	}
	c.SetToken(data.Token)
	return &Session{Email: data.Email, UserUID: data.UserUID, Token: data.Token}, nil
}

// CurrentSession проверяет сохранённый токен и возвращает сессию,
// если токен ещё действителен.
func (c *Client) CurrentSession(ctx context.Context, token string) (*Session, error) {
	c.SetToken(token)
	var data struct {
		Email   string `json:"email"`
		UserUID string `json:"user_uid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/session", nil, &data); err != nil {
		c.SetToken("")
		return nil, &AuthError{Message: err.Error()}
	}
	return &Session{Email: data.Email, UserUID: data.UserUID, Token: token}, nil
}

// FetchLoans возвращает займы пользователя с вложенными платежами
// и рассчитанными суммами, от новых к старым.
func (c *Client) FetchLoans(ctx context.Context) ([]models.Loan, error) {
	var data struct {
		Loans []models.Loan `json:"loans"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/loans", nil, &data); err != nil {
		return nil, &DataFetchError{Err: err}
	}
	return data.Loans, nil
}

// FetchSummary возвращает агрегаты по портфелю займов.
func (c *Client) FetchSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	var data struct {
		Summary models.PortfolioSummary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/summary", nil, &data); err != nil {
		return nil, &DataFetchError{Err: err}
	}
	return &data.Summary, nil
}

// CreateLoan проверяет поля формы и создает займ. Некорректные
// обязательные поля отклоняются до отправки запроса.
func (c *Client) CreateLoan(ctx context.Context, req models.DummyLoan) (*models.Loan, error) {
	if err := validateLoanForm(req); err != nil {
		return nil, err
	}
	var data struct {
		Loan models.Loan `json:"loan"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/loans", req, &data); err != nil {
		return nil, &WriteError{Op: "create loan", Err: err}
	}
	return &data.Loan, nil
}

// RecordPayment проверяет сумму и записывает платёж по займу.
func (c *Client) RecordPayment(ctx context.Context, loanID int64, req models.DummyPayment) (*models.Payment, error) {
	if amount, err := strconv.ParseFloat(req.Amount, 64); err != nil || amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	var data struct {
		Payment models.Payment `json:"payment"`
	}
	path := fmt.Sprintf("/api/v1/loans/%d/payments", loanID)
	if err := c.do(ctx, http.MethodPost, path, req, &data); err != nil {
		return nil, &WriteError{Op: "record payment", Err: err}
	}
	return &data.Payment, nil
}

// DeleteLoan безвозвратно удаляет займ. Подтверждение пользователя —
// обязанность вызывающей стороны, шлюз выполняет запрос сразу.
func (c *Client) DeleteLoan(ctx context.Context, loanID int64) error {
	path := fmt.Sprintf("/api/v1/loans/%d", loanID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return &WriteError{Op: "delete loan", Err: err}
	}
	return nil
}

func validateLoanForm(req models.DummyLoan) error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if v, err := strconv.ParseFloat(req.Principal, 64); err != nil || v <= 0 {
		return &ValidationError{Field: "principal", Reason: "must be a positive number"}
	}
	if v, err := strconv.ParseFloat(req.MonthlyPayment, 64); err != nil || v <= 0 {
		return &ValidationError{Field: "monthly_payment", Reason: "must be a positive number"}
	}
	return nil
}
