// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loan-dashboard/internal/http/response"
	"github.com/magabrotheeeer/loan-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/loan-dashboard/internal/storage"
)

// Handler проверяет доступность базы данных.
type Handler struct {
	log *slog.Logger
	db  *storage.Storage
}

// New создает новый Handler.
func New(log *slog.Logger, db *storage.Storage) *Handler {
	return &Handler{log: log, db: db}
}

// ServeHTTP godoc
// @Summary Проверка готовности сервиса
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис готов"
// @Failure 503 {object} response.Response "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := storage.CheckDatabaseReady(h.db); err != nil {
		h.log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}
	render.JSON(w, r, response.OK())
}
