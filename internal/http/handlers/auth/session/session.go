// Package session реализует HTTP-обработчик проверки текущей сессии.
// Клиент использует его при старте, чтобы восстановить сессию
// по сохранённому токену.
package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
)

// Handler возвращает данные пользователя текущей сессии.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает email и uid пользователя по валидному токену.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Данные сессии"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Security BearerAuth
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.session"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"email":    email,
		"user_uid": userUID,
	}))
}
