// Package list реализует HTTP-обработчик чтения чата тура.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	chatsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/chat"
)

// Service описывает чтение сообщений.
type Service interface {
	List(ctx context.Context, tourID, userID string, limit int) ([]models.ChatMessage, error)
}

// Handler обработчик GET /chat/{tourId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сообщения чата
// @Description Возвращает последние сообщения чата тура. Доступно только участникам.
// @Tags Chat
// @Produce  json
// @Security BearerAuth
// @Param tourId path string true "ID тура"
// @Param limit query int false "количество сообщений"
// @Success 200 {object} response.Response "сообщения"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 403 {object} response.Response "не участник"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /chat/{tourId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.list"
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

	msgs, err := h.service.List(r.Context(), tourID, userID, cast.ToInt(r.URL.Query().Get("limit")))
	if errors.Is(err, chatsvc.ErrNotParticipant) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("only participants can read the chat"))
		return
	}
	if err != nil {
		log.Error("failed to list messages", sl.TourID(tourID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list messages"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(msgs),
		"messages": msgs,
	}))
}
