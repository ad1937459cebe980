// Package create реализует HTTP-обработчик записи платежа по займу.
//
// Handler принимает сумму и необязательную заметку, валидирует их,
// проверяет принадлежность займа текущему пользователю и возвращает
// сохранённый платёж. Платёж после создания не изменяется.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
	"github.com/magabrotheeeer/loan-dashboard/internal/services"
	"github.com/magabrotheeeer/loan-dashboard/internal/storage"
)

// Service описывает интерфейс бизнес-логики записи платежа.
type Service interface {
	RecordPayment(ctx context.Context, userUID string, loanID int64, req models.DummyPayment) (*models.Payment, error)
}

// Handler управляет HTTP-запросами на запись платежей.
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
// @Summary Записать платёж по займу
// @Description Добавляет платёж к займу текущего пользователя. Возвращает сохранённый платёж.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор займа"
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 200 {object} response.Response "Платёж записан"
// @Failure 400 {object} response.Response "Некорректный JSON или ID"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 404 {object} response.Response "Займ не найден"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Ошибка сервера при записи платежа"
// @Security BearerAuth
// @Router /loans/{id}/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	loanID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyPayment
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

	payment, err := h.service.RecordPayment(r.Context(), userUID, loanID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			log.Error("invalid payment fields", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, storage.ErrNotFound):
			log.Error("loan not found", slog.Int64("loan_id", loanID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("loan not found"))
		default:
			log.Error("failed to record payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not record payment"))
		}
		return
	}

	log.Info("recorded payment", slog.Int64("loan_id", loanID), slog.Int64("id", payment.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment": payment,
	}))
}
