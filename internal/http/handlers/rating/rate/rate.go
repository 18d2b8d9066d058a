// Package rate реализует HTTP-обработчик выставления оценки профилю.
package rate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	ratingsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/rating"
)

// Service описывает выставление оценки.
type Service interface {
	Rate(ctx context.Context, raterID, rateeID string, req models.RateRequest) (models.RatingSummary, error)
}

// Handler обработчик PUT /profiles/{id}/rating.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оценить пользователя
// @Description Ставит или обновляет оценку другого пользователя.
// @Tags Ratings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID оцениваемого"
// @Param request body models.RateRequest true "оценка"
// @Success 200 {object} response.Response "сводка оценок"
// @Failure 400 {object} response.Response "некорректный запрос"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 422 {object} response.Response "ошибка валидации"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /profiles/{id}/rating [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.rate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	raterID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	rateeID := chi.URLParam(r, "id")
	if err := uuid.Validate(rateeID); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid profile id"))
		return
	}

	var req models.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	summary, err := h.service.Rate(r.Context(), raterID, rateeID, req)
	switch {
	case err == nil:
	case errors.Is(err, ratingsvc.ErrSelfRating):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("cannot rate yourself"))
		return
	case errors.Is(err, ratingsvc.ErrInvalidScore):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("score must be between 1 and 5"))
		return
	default:
		log.Error("failed to save rating", sl.UserID(raterID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save rating"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(summary))
}
