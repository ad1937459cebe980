// Package create реализует HTTP-обработчик создания нового займа.
//
// Handler принимает JSON-запрос с данными формы, валидирует их, извлекает uid
// пользователя из контекста, создаёт займ через сервис и возвращает
// сохранённую запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
	"github.com/magabrotheeeer/loan-dashboard/internal/services"
)

// Service описывает интерфейс бизнес-логики создания займа.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyLoan) (*models.Loan, error)
}

// Handler управляет HTTP-запросами на создание займов.
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
// @Summary Создать новый займ
// @Description Создает займ текущего пользователя. Возвращает сохранённую запись.
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param request body models.DummyLoan true "Данные нового займа"
// @Success 200 {object} response.Response "Займ создан"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Ошибка сервера при создании займа"
// @Security BearerAuth
// @Router /loans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLoan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	loan, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			log.Error("invalid loan fields", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create loan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create loan"))
		return
	}

	log.Info("created new loan", slog.Int64("id", loan.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"loan": loan,
	}))
}
