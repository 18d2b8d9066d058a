// Package entitlement управляет профилями и пробным периодом: регистрирует
// профиль, вычисляет доступ и записывает истечение пробного периода.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
)

// ProfileRepository хранилище профилей.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p models.Profile) (bool, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	MarkTrialExpired(ctx context.Context, id string) (bool, error)
	SetPremium(ctx context.Context, id string) error
}

// Publisher отправляет события об изменениях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service сервис доступа.
type Service struct {
	repo ProfileRepository
	pub  Publisher
	log  *slog.Logger
	now  func() time.Time
}

// NewService создает сервис. pub может быть nil, тогда события не публикуются.
func NewService(repo ProfileRepository, pub Publisher, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		pub:  pub,
		log:  log,
		now:  time.Now,
	}
}

// Register создает профиль и открывает пробный период. Повторный вызов
// возвращает существующий профиль без изменения окна пробного периода.
func (s *Service) Register(ctx context.Context, userID, email, fullName string) (*models.Profile, bool, error) {
	const op = "entitlement.Register"
	now := s.now().UTC()
	start, end := ent.Window(now)

	created, err := s.repo.CreateProfile(ctx, models.Profile{
		ID:         userID,
		Email:      email,
		FullName:   fullName,
		TrialStart: &start,
		TrialEnd:   &end,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if created {
		s.log.Info("profile registered", sl.UserID(userID))
		s.publish(ctx, models.ChangeInsert, p)
	}
	return p, created, nil
}

// Resolve вычисляет доступ пользователя на текущий момент. Если пробный период
// истек, а флаг в профиле еще не выставлен, флаг записывается. Ошибка записи
// только логируется: результат вычисления от нее не зависит.
func (s *Service) Resolve(ctx context.Context, userID string) (ent.Result, error) {
	const op = "entitlement.Resolve"
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return ent.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	res, _ := s.Apply(ctx, p, "request")
	return res, nil
}

// Apply вычисляет доступ для уже загруженного профиля и при необходимости
// записывает истечение. Второе значение true, если флаг был записан этим вызовом.
// source попадает в метрики.
func (s *Service) Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool) {
	res := ent.Evaluate(p.Entitlement(), s.now())
	if !res.ShouldPersistExpiry {
		return res, false
	}

	changed, err := s.repo.MarkTrialExpired(ctx, p.ID)
	if err != nil {
		s.log.Error("failed to persist trial expiry", sl.UserID(p.ID), sl.Err(err))
		return res, false
	}
	if changed {
		metrics.TrialExpiryPersisted.WithLabelValues(source).Inc()
		s.log.Info("trial expired", sl.UserID(p.ID), slog.String("source", source))
		expired := *p
		expired.TrialExpired = true
		s.publish(ctx, models.ChangeUpdate, &expired)
	}
	return res, changed
}

// GrantPremium включает премиум для пользователя.
func (s *Service) GrantPremium(ctx context.Context, userID string) error {
	const op = "entitlement.GrantPremium"
	if err := s.repo.SetPremium(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("premium granted", sl.UserID(userID))

	if p, err := s.repo.GetProfile(ctx, userID); err == nil {
		s.publish(ctx, models.ChangeUpdate, p)
	}
	return nil
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "entitlement.Profile"
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) publish(ctx context.Context, changeType string, p *models.Profile) {
	if s.pub == nil {
		return
	}
	ev, err := models.NewChangeEvent(changeType, models.TableProfiles, p)
	if err == nil {
		err = s.pub.Publish(ctx, rabbitmq.RoutingKey(ev.Table, ev.Type), ev)
	}
	if err != nil {
		metrics.PublishFailures.Inc()
		s.log.Warn("failed to publish profile change", sl.UserID(p.ID), sl.Err(err))
	}
}
