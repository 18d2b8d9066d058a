// Package chat чат участников тура.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
)

const (
	// DefaultLimit число последних сообщений по умолчанию.
	DefaultLimit = 50
	// MaxLimit верхняя граница размера страницы.
	MaxLimit = 200
)

var (
	// ErrNotParticipant пользователь не участвует в туре.
	ErrNotParticipant = errors.New("not a participant of the tour")
	// ErrEmptyMessage сообщение пустое после обрезки пробелов.
	ErrEmptyMessage = errors.New("empty message")
)

// Repository хранилище сообщений.
type Repository interface {
	IsParticipant(ctx context.Context, tourID, userID string) (bool, error)
	CreateMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error)
	ListMessages(ctx context.Context, tourID string, limit int) ([]models.ChatMessage, error)
}

// Publisher отправляет события об изменениях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service сервис чата.
type Service struct {
	repo Repository
	pub  Publisher
	log  *slog.Logger
}

// NewService создает сервис чата.
func NewService(repo Repository, pub Publisher, log *slog.Logger) *Service {
	return &Service{repo: repo, pub: pub, log: log}
}

// Send сохраняет сообщение участника и рассылает событие.
func (s *Service) Send(ctx context.Context, tourID, userID, body string) (*models.ChatMessage, error) {
	const op = "chat.Send"
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}
	if err := s.checkParticipant(ctx, tourID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	msg, err := s.repo.CreateMessage(ctx, models.ChatMessage{TourID: tourID, UserID: userID, Body: body})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.pub != nil {
		ev, err := models.NewChangeEvent(models.ChangeInsert, models.TableChatMessages, msg)
		if err == nil {
			err = s.pub.Publish(ctx, rabbitmq.RoutingKey(ev.Table, ev.Type), ev)
		}
		if err != nil {
			metrics.PublishFailures.Inc()
			s.log.Warn("failed to publish chat message", sl.TourID(tourID), sl.Err(err))
		}
	}
	return &msg, nil
}

// List возвращает последние limit сообщений, старые первыми.
func (s *Service) List(ctx context.Context, tourID, userID string, limit int) ([]models.ChatMessage, error) {
	const op = "chat.List"
	if err := s.checkParticipant(ctx, tourID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	msgs, err := s.repo.ListMessages(ctx, tourID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return msgs, nil
}

func (s *Service) checkParticipant(ctx context.Context, tourID, userID string) error {
	ok, err := s.repo.IsParticipant(ctx, tourID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}
