// Package login реализует HTTP-обработчик входа пользователя.
//
// Handler проверяет email и пароль через сервис аутентификации и возвращает
// JWT токен для дальнейших запросов.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
	"github.com/magabrotheeeer/loan-dashboard/internal/services"
)

// LoginRequest — данные формы входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (string, *models.User, error)
}

// Handler управляет HTTP-запросами на вход пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Войти в систему
// @Description Проверяет email и пароль, возвращает JWT токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body LoginRequest true "Данные входа"
// @Success 200 {object} response.Response "Токен выдан"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Неверные учётные данные"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Error("incorrect email or password", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to login", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("user logged in", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":    token,
		"email":    user.Email,
		"user_uid": user.UID,
	}))
}
