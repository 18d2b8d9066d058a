// Package webhook принимает уведомления платежного провайдера и включает
// премиум после успешной оплаты.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/response"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// SignatureHeader заголовок с подписью тела запроса.
const SignatureHeader = "X-Api-Signature"

// PaymentSucceeded событие успешной оплаты.
const PaymentSucceeded = "payment.succeeded"

const maxBody = 1 << 20

// Service описывает включение премиума.
type Service interface {
	GrantPremium(ctx context.Context, userID string) error
}

// Payload тело уведомления.
type Payload struct {
	Event  string `json:"event"`
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// Handler обработчик POST /payments/webhook.
type Handler struct {
	log     *slog.Logger
	service Service
	secret  string
}

// New создает Handler с секретом для проверки подписи.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{log: log, service: service, secret: secret}
}

// Sign возвращает подпись body: base64(HMAC-SHA256(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (h *Handler) verify(body []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(h.secret, body)), []byte(signature))
}

// ServeHTTP godoc
// @Summary Вебхук платёжной системы
// @Description Принимает события подписки и обновляет премиум-статус. Проверяет подпись тела.
// @Tags Hooks
// @Accept  json
// @Produce  json
// @Param X-Api-Signature header string true "HMAC-SHA256 подпись тела"
// @Success 200 {object} response.Response "ok"
// @Failure 400 {object} response.Response "некорректное событие"
// @Failure 401 {object} response.Response "неверная подпись"
// @Failure 422 {object} response.Response "неизвестный пользователь"
// @Failure 500 {object} response.Response "внутренняя ошибка"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		log.Warn("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if !h.verify(body, r.Header.Get(SignatureHeader)) {
		log.Warn("invalid or missing webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warn("failed to unmarshal webhook payload", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if strings.ToLower(payload.Event) != PaymentSucceeded {
		log.Info("ignored webhook event", slog.String("event", payload.Event))
		render.JSON(w, r, response.OK())
		return
	}

	userID := payload.Object.Metadata["user_id"]
	if userID == "" {
		log.Warn("payment without user_id", slog.String("payment_id", payload.Object.ID))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("metadata.user_id is required"))
		return
	}

	err = h.service.GrantPremium(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		// повтор не поможет, подтверждаем получение
		log.Warn("payment for unknown profile", sl.UserID(userID), slog.String("payment_id", payload.Object.ID))
		render.JSON(w, r, response.OK())
		return
	}
	if err != nil {
		log.Error("failed to grant premium", sl.UserID(userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process payment"))
		return
	}

	log.Info("premium granted", sl.UserID(userID), slog.String("payment_id", payload.Object.ID))
	render.JSON(w, r, response.OK())
}
