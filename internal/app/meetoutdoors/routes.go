package meetoutdoors

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/meetoutdoors/meetoutdoors-api/internal/config"
	chatlist "github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/chat/list"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/chat/send"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/health"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/hooks/changes"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/payment/webhook"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/profile/me"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/profile/register"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/rating/rate"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/rating/summary"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/create"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/join"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/leave"
	tourlist "github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/list"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/participants"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/handlers/tour/read"
	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	chatsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/chat"
	entsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/entitlement"
	ratingsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/rating"
	toursvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/tour"
)

// Services набор сервисов, которые обслуживает HTTP API.
type Services struct {
	Entitlement *entsvc.Service
	Tours       *toursvc.Service
	Chat        *chatsvc.Service
	Ratings     *ratingsvc.Service
	Publisher   changes.Publisher
	Tokens      middlewarectx.TokenParser
	Health      map[string]health.Checker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst),
	)

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Вебхуки без JWT, со своей проверкой подлинности
		r.Post("/hooks/changes", changes.New(logger, s.Publisher, cfg.ChangeSecret).ServeHTTP)
		r.Post("/payments/webhook", webhook.New(logger, s.Entitlement, cfg.PaymentSecret).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Tokens, logger))

			r.Post("/profile", register.New(logger, s.Entitlement).ServeHTTP)
			r.Get("/profile/me", me.New(logger, s.Entitlement).ServeHTTP)
			r.Get("/tours", tourlist.New(logger, s.Tours).ServeHTTP)
			r.Get("/tours/{id}", read.New(logger, s.Tours).ServeHTTP)
			r.Get("/tours/{id}/participants", participants.New(logger, s.Tours).ServeHTTP)
			r.Get("/profiles/{id}/rating", summary.New(logger, s.Ratings).ServeHTTP)

			// Действия, требующие премиума или активного пробного периода
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.EntitlementMiddleware(logger, s.Entitlement))

				r.Post("/tours", create.New(logger, s.Tours).ServeHTTP)
				r.Post("/tours/{id}/join", join.New(logger, s.Tours).ServeHTTP)
				r.Delete("/tours/{id}/join", leave.New(logger, s.Tours).ServeHTTP)
				r.Get("/chat/{tourId}", chatlist.New(logger, s.Chat).ServeHTTP)
				r.Post("/chat/{tourId}", send.New(logger, s.Chat).ServeHTTP)
				r.Put("/profiles/{id}/rating", rate.New(logger, s.Ratings).ServeHTTP)
			})
		})
	})
}
