// Package create реализует HTTP-обработчик создания тура.
//
// Handler принимает JSON с данными тура, валидирует его, берет создателя из
// контекста и возвращает созданный тур с производными полями.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	toursvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/tour"
)

// Service описывает бизнес-логику создания тура.
type Service interface {
	Create(ctx context.Context, creatorID string, req models.CreateTourRequest) (*models.TourView, error)
}

// Handler обработчик POST /tours.
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
// @Summary Создать тур
// @Description Создаёт тур от имени текущего пользователя. Требует премиум или активный пробный период.
// @Tags Tours
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CreateTourRequest true "параметры тура"
// @Success 201 {object} response.Response "созданный тур"
// @Failure 400 {object} response.Response "некорректный запрос"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 403 {object} response.Response "нет доступа"
// @Failure 422 {object} response.Response "ошибка валидации"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /tours [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("validator failure", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	view, err := h.service.Create(r.Context(), userID, req)
	if errors.Is(err, toursvc.ErrInvalidTour) {
		log.Warn("tour rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to create tour", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create tour"))
		return
	}

	log.Info("tour created", sl.TourID(view.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(view))
}
