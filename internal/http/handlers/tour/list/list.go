// Package list реализует HTTP-обработчик списка туров.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает чтение страницы туров.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]models.TourView, error)
}

// Handler обработчик GET /tours.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список туров
// @Description Возвращает туры со статусом, вычисленным на момент запроса.
// @Tags Tours
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "размер страницы"
// @Param offset query int false "смещение"
// @Success 200 {object} response.Response "туры"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := cast.ToInt(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(cast.ToInt(r.URL.Query().Get("offset")), 0)

	tours, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list tours", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tours"))
		return
	}

	log.Debug("tours listed", slog.Int("count", len(tours)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(tours),
		"tours": tours,
	}))
}
