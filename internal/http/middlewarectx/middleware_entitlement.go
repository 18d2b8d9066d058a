package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// Причины отказа в доступе.
const (
	ReasonTrialExpired    = "TRIAL_EXPIRED"
	ReasonProfileRequired = "PROFILE_REQUIRED"
)

// EntitlementResolver вычисляет доступ пользователя.
type EntitlementResolver interface {
	Resolve(ctx context.Context, userID string) (ent.Result, error)
}

// EntitlementMiddleware пропускает запрос, только если у пользователя премиум
// или не истек пробный период. Результат кладется в контекст.
func EntitlementMiddleware(log *slog.Logger, resolver EntitlementResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.EntitlementMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userID, ok := UserIDFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			res, err := resolver.Resolve(r.Context(), userID)
			if errors.Is(err, storage.ErrNotFound) {
				log.Info("profile not registered", sl.UserID(userID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Denied("profile is not registered", ReasonProfileRequired))
				return
			}
			if err != nil {
				log.Error("failed to resolve entitlement", sl.UserID(userID), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if !res.Allowed() {
				metrics.EntitlementDenied.Inc()
				log.Info("trial expired, access denied", sl.UserID(userID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Denied("trial expired, premium required", ReasonTrialExpired))
				return
			}

			ctx := context.WithValue(r.Context(), Entitlement, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
