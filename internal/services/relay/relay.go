// Package relay обрабатывает уведомления об изменениях строк: сбрасывает
// кеш туров и пересчитывает доступ по измененным профилям.
//
// Повторная или переупорядоченная доставка безопасна: все действия идемпотентны.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/parse"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
)

const source = "relay"

// TourInvalidator сбрасывает снапшот тура.
type TourInvalidator interface {
	Invalidate(ctx context.Context, tourID string) error
}

// Evaluator вычисляет доступ и записывает истечение.
type Evaluator interface {
	Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool)
}

// Service обработчик событий изменений.
type Service struct {
	tours TourInvalidator
	eval  Evaluator
	log   *slog.Logger
}

// NewService создает обработчик.
func NewService(tours TourInvalidator, eval Evaluator, log *slog.Logger) *Service {
	return &Service{tours: tours, eval: eval, log: log}
}

// Handle обрабатывает одно сообщение из очереди. Неразборчивые сообщения
// возвращают rabbitmq.ErrDiscard, временные сбои возвращают обычную ошибку.
func (s *Service) Handle(ctx context.Context, body []byte) error {
	const op = "relay.Handle"
	var ev models.ChangeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%s: %w: %v", op, rabbitmq.ErrDiscard, err)
	}
	if err := s.HandleEvent(ctx, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HandleEvent применяет событие.
func (s *Service) HandleEvent(ctx context.Context, ev models.ChangeEvent) error {
	metrics.ChangeEvents.WithLabelValues(ev.Table, ev.Type).Inc()
	log := s.log.With(slog.String("table", ev.Table), slog.String("type", ev.Type))

	switch ev.Table {
	case models.TableTours, models.TableParticipants, models.TableChatMessages:
		tourID := parse.TourID(ev.Table, record(ev))
		if tourID == "" {
			log.Warn("change without tour id")
			return rabbitmq.ErrDiscard
		}
		if ev.Table == models.TableChatMessages {
			// сообщения не входят в снапшот тура
			return nil
		}
		if err := s.tours.Invalidate(ctx, tourID); err != nil {
			return err
		}
		log.Debug("tour snapshot invalidated", sl.TourID(tourID))
		return nil

	case models.TableProfiles:
		if ev.Type == models.ChangeDelete {
			return nil
		}
		p := parse.Profile(ev.Record)
		if p.ID == "" {
			log.Warn("profile change without id")
			return rabbitmq.ErrDiscard
		}
		res, persisted := s.eval.Apply(ctx, &p, source)
		log.Debug("profile re-evaluated", sl.UserID(p.ID),
			slog.String("state", string(res.State)), slog.Bool("persisted", persisted))
		return nil

	default:
		log.Debug("change ignored")
		return nil
	}
}

// record возвращает актуальную запись; для удаления это old_record.
func record(ev models.ChangeEvent) parse.Record {
	if ev.Type == models.ChangeDelete && len(ev.OldRecord) > 0 {
		return ev.OldRecord
	}
	if len(ev.Record) > 0 {
		return ev.Record
	}
	return ev.OldRecord
}
