// Package sweeper периодически находит истекшие пробные периоды и
// записывает флаг trial_expired, не дожидаясь запроса пользователя.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

const source = "sweeper"

const (
	// DefaultInterval период прохода при неположительном interval.
	DefaultInterval = time.Hour
	// DefaultBatch размер выборки при неположительном batch.
	DefaultBatch = 500
)

// ProfileRepository выборка кандидатов на истечение.
type ProfileRepository interface {
	ListTrialCandidates(ctx context.Context, cutoff time.Time, limit int) ([]models.Profile, error)
}

// Evaluator вычисляет доступ и записывает истечение.
type Evaluator interface {
	Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool)
}

// Service фоновая проверка пробных периодов.
type Service struct {
	repo     ProfileRepository
	eval     Evaluator
	interval time.Duration
	batch    int
	log      *slog.Logger
	now      func() time.Time
}

// NewService создает сервис. interval период между проходами, batch размер выборки.
// Неположительные значения заменяются на DefaultInterval и DefaultBatch.
func NewService(repo ProfileRepository, eval Evaluator, interval time.Duration, batch int, log *slog.Logger) *Service {
	if batch <= 0 {
		batch = DefaultBatch
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		repo:     repo,
		eval:     eval,
		interval: interval,
		batch:    batch,
		log:      log,
		now:      time.Now,
	}
}

// Run выполняет проход сразу и затем каждые interval до отмены ctx.
func (s *Service) Run(ctx context.Context) {
	s.log.Info("trial sweeper started", slog.Duration("interval", s.interval))
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("trial sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	n, err := s.Sweep(ctx)
	if err != nil {
		s.log.Error("trial sweep failed", sl.Err(err))
		return
	}
	if n > 0 {
		s.log.Info("trial sweep finished", slog.Int("expired", n))
	}
}

// Sweep обрабатывает всех кандидатов пачками и возвращает число записанных истечений.
// Проход останавливается, если пачка не дала ни одной записи.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	const op = "sweeper.Sweep"
	cutoff := s.now().Add(-ent.TrialDays * 24 * time.Hour)
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("%s: %w", op, err)
		}
		candidates, err := s.repo.ListTrialCandidates(ctx, cutoff, s.batch)
		if err != nil {
			return total, fmt.Errorf("%s: %w", op, err)
		}

		persisted := 0
		for i := range candidates {
			if _, ok := s.eval.Apply(ctx, &candidates[i], source); ok {
				persisted++
			}
		}
		total += persisted

		if len(candidates) < s.batch || persisted == 0 {
			return total, nil
		}
	}
}
