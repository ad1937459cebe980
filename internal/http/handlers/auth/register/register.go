// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает email и пароль, валидирует их, создаёт учётную запись
// через сервис аутентификации и возвращает uid созданного пользователя
// с информационным сообщением о дальнейших шагах.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
)

// RegisterRequest — данные формы регистрации.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, rawPassword string) (string, error)
}

// Handler управляет HTTP-запросами на регистрацию пользователей.
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
// @Summary Зарегистрировать нового пользователя
// @Description Создает учётную запись по email и паролю. Возвращает uid пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body RegisterRequest true "Данные регистрации"
// @Success 200 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Ошибка сервера при регистрации"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req RegisterRequest
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

	uid, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("failed to register new user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register new user"))
		return
	}

	log.Info("created new user", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_uid": uid,
		"email":    req.Email,
		"message":  "account created, you can sign in now",
	}))
}
