// Package remove реализует HTTP-обработчик удаления займа по его ID.
//
// Удаление необратимо: платежи займа удаляются каскадно на уровне схемы.
// Подтверждение удаления — обязанность клиента, сервер выполняет запрос сразу.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления займа.
type Service interface {
	Remove(ctx context.Context, userUID string, loanID int64) (int, error)
}

// Handler управляет HTTP-запросами на удаление займов.
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
// @Summary Удалить займ по ID
// @Description Удаляет займ текущего пользователя вместе с платежами.
// @Tags Loans
// @Produce  json
// @Param id path int true "Идентификатор займа"
// @Success 200 {object} response.Response "Количество удалённых записей"
// @Failure 400 {object} response.Response "Некорректный ID"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 404 {object} response.Response "Займ не найден"
// @Failure 500 {object} response.Response "Ошибка сервера при удалении"
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.Remove(r.Context(), userUID, id)
	if err != nil {
		log.Error("failed to remove loan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove loan"))
		return
	}
	if count == 0 {
		log.Error("loan not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("loan not found"))
		return
	}

	log.Info("deleted loan", slog.Int64("id", id), slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted_count": count,
	}))
}
