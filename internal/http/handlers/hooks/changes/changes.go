// Package changes принимает вебхуки базы данных бэкенда об изменениях строк
// и публикует их в шину, откуда их забирает ретранслятор.
package changes

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
)

// SecretHeader заголовок с общим секретом вебхука.
const SecretHeader = "X-Webhook-Secret"

const maxBody = 1 << 20

// Publisher отправляет события в шину.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Handler обработчик POST /hooks/changes.
type Handler struct {
	log    *slog.Logger
	pub    Publisher
	secret string
}

// New создает Handler. Пустой secret отклоняет все запросы.
func New(log *slog.Logger, pub Publisher, secret string) *Handler {
	return &Handler{log: log, pub: pub, secret: secret}
}

// ServeHTTP godoc
// @Summary Уведомление об изменении
// @Description Принимает событие изменения строки и публикует его в брокер. Проверяет общий секрет.
// @Tags Hooks
// @Accept  json
// @Produce  json
// @Param X-Webhook-Secret header string true "общий секрет"
// @Param request body models.ChangeEvent true "событие"
// @Success 202 {object} response.Response "принято"
// @Failure 400 {object} response.Response "некорректное событие"
// @Failure 401 {object} response.Response "неверный секрет"
// @Failure 503 {object} response.Response "брокер недоступен"
// @Router /hooks/changes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.hooks.changes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	got := r.Header.Get(SecretHeader)
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		log.Warn("invalid webhook secret")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid webhook secret"))
		return
	}

	var ev models.ChangeEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&ev); err != nil {
		log.Warn("failed to decode change", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	switch ev.Type {
	case models.ChangeInsert, models.ChangeUpdate, models.ChangeDelete:
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown change type"))
		return
	}
	if ev.Table == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("table is required"))
		return
	}

	if err := h.pub.Publish(r.Context(), rabbitmq.RoutingKey(ev.Table, ev.Type), ev); err != nil {
		metrics.PublishFailures.Inc()
		log.Error("failed to publish change", slog.String("table", ev.Table), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to enqueue change"))
		return
	}

	log.Debug("change enqueued", slog.String("table", ev.Table), slog.String("type", ev.Type))
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response.OK())
}
