// Package session реализует контроллер сессии дашборда: вход, регистрацию,
// выход и восстановление сессии по сохранённому токену при старте.
//
// Контроллер уведомляет подписчиков о каждой смене сессии (вход, выход,
// восстановление). Подписчики сами решают, нужно ли перезагружать данные;
// контроллер передаёт им текущую сессию или nil после выхода.
package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/magabrotheeeer/loan-dashboard/internal/dashboard/gateway"
)

// API описывает операции аутентификации, которые контроллер выполняет
// через шлюз.
type API interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*gateway.Session, error)
	CurrentSession(ctx context.Context, token string) (*gateway.Session, error)
	SetToken(token string)
}

// Controller управляет жизненным циклом сессии пользователя.
type Controller struct {
	api       API
	tokenFile string

	mu        sync.Mutex
	current   *gateway.Session
	loading   bool
	observers []func(*gateway.Session)
}

// New создает контроллер. tokenFile — путь к файлу с сохранённым токеном,
// пустой путь отключает восстановление сессии.
func New(api API, tokenFile string) *Controller {
	return &Controller{
		api:       api,
		tokenFile: tokenFile,
	}
}

// Subscribe регистрирует наблюдателя смены сессии. Наблюдатель вызывается
// при входе, восстановлении и выходе.
func (c *Controller) Subscribe(fn func(*gateway.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Current возвращает текущую сессию или nil.
func (c *Controller) Current() *gateway.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Loading сообщает, идёт ли восстановление сессии. Пока Loading — true,
// вид не должен отрисовывать авторизованное состояние.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Restore пытается восстановить сессию по сохранённому токену.
// Отсутствие или недействительность токена ошибкой не считается:
// пользователь просто остаётся неавторизованным.
func (c *Controller) Restore(ctx context.Context) {
	if c.tokenFile == "" {
		return
	}
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	data, err := os.ReadFile(c.tokenFile)
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return
	}

	sess, err := c.api.CurrentSession(ctx, token)
	if err != nil {
		_ = os.Remove(c.tokenFile)
		return
	}
	c.establish(sess)
}

// SignIn выполняет вход, сохраняет токен и уведомляет наблюдателей.
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	sess, err := c.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if c.tokenFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.tokenFile), 0o700); err == nil {
			_ = os.WriteFile(c.tokenFile, []byte(sess.Token), 0o600)
		}
	}
	c.establish(sess)
	return nil
}

// SignUp регистрирует пользователя. Сессия не устанавливается:
// возвращается информационное сообщение сервера для показа пользователю.
func (c *Controller) SignUp(ctx context.Context, email, password string) (string, error) {
	return c.api.SignUp(ctx, email, password)
}

// SignOut сбрасывает сессию, удаляет сохранённый токен и уведомляет
// наблюдателей значением nil.
func (c *Controller) SignOut() {
	c.mu.Lock()
	c.current = nil
	observers := make([]func(*gateway.Session), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	c.api.SetToken("")
	if c.tokenFile != "" {
		_ = os.Remove(c.tokenFile)
	}
	for _, fn := range observers {
		fn(nil)
	}
}

func (c *Controller) establish(sess *gateway.Session) {
	c.mu.Lock()
	c.current = sess
	observers := make([]func(*gateway.Session), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(sess)
	}
}
