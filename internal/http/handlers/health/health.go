// Package health реализует проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
)

// Checker проверка зависимости.
type Checker func(ctx context.Context) error

// Handler обработчик GET /health.
type Handler struct {
	log    *slog.Logger
	checks map[string]Checker
}

// New создает Handler. checks именованные проверки зависимостей.
func New(log *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{log: log, checks: checks}
}

// ServeHTTP отвечает 200, если все зависимости доступны, и 503 иначе.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	result := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("dependency unhealthy", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			result[name] = "down"
			healthy = false
			continue
		}
		result[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{Status: response.StatusError, Error: "unhealthy", Data: result})
		return
	}
	render.JSON(w, r, response.StatusOKWithData(result))
}
