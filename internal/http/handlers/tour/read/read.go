// Package read реализует HTTP-обработчик чтения тура по идентификатору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// Service описывает чтение тура.
type Service interface {
	Get(ctx context.Context, id string) (*models.TourView, error)
}

// Handler обработчик GET /tours/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить тур
// @Description Возвращает тур по ID вместе со статусом.
// @Tags Tours
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response "тур"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 404 {object} response.Response "тур не найден"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		log.Warn("invalid tour id", slog.String("id", id))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid tour id"))
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tour not found"))
		return
	}
	if err != nil {
		log.Error("failed to read tour", sl.TourID(id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read tour"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(view))
}
