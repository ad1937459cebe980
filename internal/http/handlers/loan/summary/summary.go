// Package summary реализует HTTP-обработчик сводки по портфелю займов:
// всего занято, всего выплачено, остаток и ежемесячные платежи по
// активным займам.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/models"
)

// Service описывает интерфейс бизнес-логики расчёта сводки.
type Service interface {
	Summary(ctx context.Context, userUID string) (models.PortfolioSummary, error)
}

// Handler управляет HTTP-запросами на чтение сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по портфелю займов
// @Description Возвращает агрегаты по всем займам текущего пользователя.
// @Tags Loans
// @Produce  json
// @Success 200 {object} response.Response "Сводка по портфелю"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера при расчёте"
// @Security BearerAuth
// @Router /summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	summary, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count summary"))
		return
	}

	log.Info("counted summary")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"summary": summary,
	}))
}
