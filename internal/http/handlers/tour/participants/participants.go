// Package participants реализует HTTP-обработчик списка участников тура.
package participants

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

// Service описывает чтение участников.
type Service interface {
	Participants(ctx context.Context, tourID string) ([]models.Participant, error)
}

// Handler обработчик GET /tours/{id}/participants.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Участники тура
// @Description Возвращает участников тура.
// @Tags Tours
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response "участники"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 404 {object} response.Response "тур не найден"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours/{id}/participants [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.participants"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tourID := chi.URLParam(r, "id")
	if err := uuid.Validate(tourID); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid tour id"))
		return
	}

	list, err := h.service.Participants(r.Context(), tourID)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tour not found"))
		return
	}
	if err != nil {
		log.Error("failed to list participants", sl.TourID(tourID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list participants"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":        len(list),
		"participants": list,
	}))
}
