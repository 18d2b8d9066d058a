// Package summary реализует HTTP-обработчик сводной оценки профиля.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

// Service описывает чтение сводной оценки.
type Service interface {
	Summary(ctx context.Context, rateeID string) (models.RatingSummary, error)
}

// Handler обработчик GET /profiles/{id}/rating.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка оценок
// @Description Возвращает среднюю оценку и число оценок пользователя.
// @Tags Ratings
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response "сводка оценок"
// @Failure 400 {object} response.Response "некорректный запрос"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /profiles/{id}/rating [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.summary"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid profile id"))
		return
	}

	sum, err := h.service.Summary(r.Context(), id)
	if err != nil {
		log.Error("failed to read rating", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read rating"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(sum))
}
