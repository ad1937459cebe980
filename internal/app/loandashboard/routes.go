// Package loandashboard предоставляет маршруты для основного приложения.
package loandashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/auth/session"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/health"
	loancreate "github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/loan/create"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/loan/list"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/loan/remove"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/loan/summary"
	paymentcreate "github.com/magabrotheeeer/loan-dashboard/internal/http/handlers/payment/create"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/loan-dashboard/internal/services"
	"github.com/magabrotheeeer/loan-dashboard/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *services.AuthService, loanService *services.LoanService, db *storage.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/session", session.New(logger).ServeHTTP)
			r.Get("/loans", list.New(logger, loanService).ServeHTTP)
			r.Post("/loans", loancreate.New(logger, loanService).ServeHTTP)
			r.Delete("/loans/{id}", remove.New(logger, loanService).ServeHTTP)
			r.Post("/loans/{id}/payments", paymentcreate.New(logger, loanService).ServeHTTP)
			r.Get("/summary", summary.New(logger, loanService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
