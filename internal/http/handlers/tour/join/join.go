// Package join реализует HTTP-обработчик вступления в тур.
//
// Отказ проверки вместимости возвращается как 409 с машиночитаемой причиной
// FULL или DEADLINE_PASSED.
package join

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
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	toursvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/tour"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// ReasonAlreadyJoined причина отказа для повторного вступления.
const ReasonAlreadyJoined = "ALREADY_JOINED"

// Service описывает вступление в тур.
type Service interface {
	Join(ctx context.Context, tourID, userID string) (*models.TourView, error)
}

// Handler обработчик POST /tours/{id}/join.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Записаться в тур
// @Description Добавляет текущего пользователя в участники тура, если есть свободные места.
// @Tags Tours
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID тура"
// @Success 200 {object} response.Response "тур после записи"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 403 {object} response.Response "нет доступа"
// @Failure 404 {object} response.Response "тур не найден"
// @Failure 409 {object} response.Response "мест нет или уже записан"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours/{id}/join [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.join"
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

	view, err := h.service.Join(r.Context(), tourID, userID)
	var denied *toursvc.JoinDeniedError
	switch {
	case err == nil:
	case errors.As(err, &denied):
		log.Info("join denied", sl.TourID(tourID), sl.UserID(userID), slog.String("reason", string(denied.Reason)))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Denied("cannot join tour", string(denied.Reason)))
		return
	case errors.Is(err, storage.ErrAlreadyJoined):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Denied("already joined", ReasonAlreadyJoined))
		return
	case errors.Is(err, storage.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tour not found"))
		return
	default:
		log.Error("failed to join tour", sl.TourID(tourID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to join tour"))
		return
	}

	log.Info("joined tour", sl.TourID(tourID), sl.UserID(userID))
	render.JSON(w, r, response.StatusOKWithData(view))
}
