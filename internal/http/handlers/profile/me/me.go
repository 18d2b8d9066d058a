// Package me реализует HTTP-обработчик текущего профиля и его доступа.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// Service описывает чтение профиля и вычисление доступа.
type Service interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool)
}

// Handler обработчик GET /profile/me.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мой профиль
// @Description Возвращает профиль и текущее состояние доступа.
// @Tags Profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "профиль"
// @Failure 401 {object} response.Response "нет токена"
// @Failure 404 {object} response.Response "профиль не найден"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /profile/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.me"
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

	profile, err := h.service.Profile(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to read profile", sl.UserID(userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read profile"))
		return
	}

	res, _ := h.service.Apply(r.Context(), profile, "request")
	profile.TrialExpired = res.TrialExpired

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile":     profile,
		"entitlement": res,
		"allowed":     res.Allowed(),
	}))
}
