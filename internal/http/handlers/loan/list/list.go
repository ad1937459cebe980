package list

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

// Service описывает интерфейс бизнес-логики чтения займов.
type Service interface {
	List(ctx context.Context, userUID string) ([]models.Loan, error)
}

// Handler управляет HTTP-запросами на чтение списка займов.
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
// @Summary Список займов пользователя
// @Description Возвращает займы текущего пользователя с вложенными платежами, от новых к старым.
// @Tags Loans
// @Produce  json
// @Success 200 {object} response.Response "Список займов"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера при чтении займов"
// @Security BearerAuth
// @Router /loans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.list"
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

	loans, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list loans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list loans"))
		return
	}

	log.Info("list loans", slog.Int("count", len(loans)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count": len(loans),
		"loans": loans,
	}))
}
