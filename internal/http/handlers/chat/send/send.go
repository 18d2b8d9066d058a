// Package send реализует HTTP-обработчик отправки сообщения в чат тура.
package send

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
	chatsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/chat"
)

// Service описывает отправку сообщения.
type Service interface {
	Send(ctx context.Context, tourID, userID, body string) (*models.ChatMessage, error)
}

// Handler обработчик POST /chat/{tourId}.
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
// @Summary Отправить сообщение
// @Description Публикует сообщение в чат тура.
// @Tags Chat
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param tourId path string true "ID тура"
// @Param request body models.SendMessageRequest true "текст сообщения"
// @Success 201 {object} response.Response "сообщение"
// @Failure 400 {object} response.Response "некорректный запрос"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 403 {object} response.Response "не участник"
// @Failure 422 {object} response.Response "ошибка валидации"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /chat/{tourId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.send"
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
	tourID := chi.URLParam(r, "tourId")
	if err := uuid.Validate(tourID); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid tour id"))
		return
	}

	var req models.SendMessageRequest
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

	msg, err := h.service.Send(r.Context(), tourID, userID, req.Body)
	switch {
	case err == nil:
	case errors.Is(err, chatsvc.ErrNotParticipant):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("only participants can post"))
		return
	case errors.Is(err, chatsvc.ErrEmptyMessage):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("message is empty"))
		return
	default:
		log.Error("failed to send message", sl.TourID(tourID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send message"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(msg))
}
