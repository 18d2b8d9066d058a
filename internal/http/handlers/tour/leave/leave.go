// Package leave реализует HTTP-обработчик выхода из тура.
package leave

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// Service описывает выход из тура.
type Service interface {
	Leave(ctx context.Context, tourID, userID string) error
}

// Handler обработчик DELETE /tours/{id}/join.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Покинуть тур
// @Description Удаляет текущего пользователя из участников тура.
// @Tags Tours
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response "ok"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 404 {object} response.Response "участие не найдено"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours/{id}/join [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.leave"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	tourID := chi.URLParam(r, "id")
	if err := uuid.Validate(tourID); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid tour id"))
		return
	}

	err := h.service.Leave(r.Context(), tourID, userID)
	if errors.Is(err, storage.ErrNotJoined) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("not a participant"))
		return
	}
	if err != nil {
		log.Error("failed to leave tour", sl.TourID(tourID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to leave tour"))
		return
	}

	render.JSON(w, r, response.OK())
}
