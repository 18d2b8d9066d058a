// Package register реализует HTTP-обработчик регистрации профиля.
// Первая регистрация открывает семидневный пробный период, повторная
// возвращает существующий профиль без изменений.
package register

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
)

// Service описывает регистрацию профиля.
type Service interface {
	Register(ctx context.Context, userID, email, fullName string) (*models.Profile, bool, error)
}

// Handler обработчик POST /profile.
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
// @Summary Регистрация профиля
// @Description Создаёт профиль при первом входе. Повторный вызов возвращает существующий профиль.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.RegisterProfileRequest true "данные профиля"
// @Success 200 {object} response.Response "профиль уже есть"
// @Success 201 {object} response.Response "профиль создан"
// @Failure 400 {object} response.Response "некорректный запрос"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 422 {object} response.Response "ошибка валидации"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /profile [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.register"
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
	email, _ := r.Context().Value(middlewarectx.Email).(string)

	var req models.RegisterProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
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

	profile, created, err := h.service.Register(r.Context(), userID, email, req.FullName)
	if err != nil {
		log.Error("failed to register profile", sl.UserID(userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register profile"))
		return
	}

	if created {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, response.StatusOKWithData(profile))
}
