// Package tour содержит бизнес-логику туров: создание, чтение с производными
// полями, вступление с проверкой вместимости и выход.
package tour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meetoutdoors/meetoutdoors-api/internal/cache"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/capacity"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/schedule"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/metrics"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// SnapshotTTL время жизни снапшота тура в кеше.
const SnapshotTTL = time.Minute

var (
	// ErrJoinDenied вступление запрещено проверкой вместимости.
	ErrJoinDenied = errors.New("join denied")
	// ErrInvalidTour тур не проходит проверку полей.
	ErrInvalidTour = errors.New("invalid tour")
)

// JoinDeniedError отказ во вступлении с причиной.
type JoinDeniedError struct {
	Reason capacity.Reason
}

func (e *JoinDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrJoinDenied, e.Reason)
}

// Is позволяет сравнивать отказ с ErrJoinDenied через errors.Is.
func (e *JoinDeniedError) Is(target error) bool {
	return target == ErrJoinDenied
}

// Repository хранилище туров и участников.
type Repository interface {
	CreateTour(ctx context.Context, t models.Tour) error
	GetTourSnapshot(ctx context.Context, id string) (*models.TourSnapshot, error)
	ListTourSnapshots(ctx context.Context, limit, offset int) ([]models.TourSnapshot, error)
	CountParticipants(ctx context.Context, tourID string) (int, error)
	IsParticipant(ctx context.Context, tourID, userID string) (bool, error)
	AddParticipant(ctx context.Context, tourID, userID string) error
	RemoveParticipant(ctx context.Context, tourID, userID string) error
	ListParticipants(ctx context.Context, tourID string) ([]models.Participant, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Publisher отправляет события об изменениях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service сервис туров.
type Service struct {
	repo  Repository
	cache Cache
	pub   Publisher
	loc   *time.Location
	log   *slog.Logger
	now   func() time.Time
}

// NewService создает сервис туров. loc задает часовой пояс календарных дат.
func NewService(repo Repository, cache Cache, pub Publisher, loc *time.Location, log *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:  repo,
		cache: cache,
		pub:   pub,
		loc:   loc,
		log:   log,
		now:   time.Now,
	}
}

// Create проверяет и сохраняет тур. Создатель становится первым участником.
func (s *Service) Create(ctx context.Context, creatorID string, req models.CreateTourRequest) (*models.TourView, error) {
	const op = "tour.Create"
	if req.Start != nil && req.End != nil && req.End.Before(*req.Start) {
		return nil, fmt.Errorf("%s: %w: end is before start", op, ErrInvalidTour)
	}
	if req.MaxPeople != nil && *req.MaxPeople <= 0 {
		return nil, fmt.Errorf("%s: %w: max_people must be positive", op, ErrInvalidTour)
	}

	t := models.Tour{
		ID:                  uuid.NewString(),
		CreatorID:           creatorID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Start:               utc(req.Start),
		End:                 utc(req.End),
		MaxPeople:           req.MaxPeople,
		ApplicationDeadline: utc(req.ApplicationDeadline),
		CreatedAt:           s.now().UTC(),
	}
	if err := s.repo.CreateTour(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("tour created", sl.TourID(t.ID), sl.UserID(creatorID))

	snap := models.TourSnapshot{Tour: t, Participants: 1}
	s.storeSnapshot(ctx, snap)
	s.publish(ctx, models.ChangeInsert, models.TableTours, t)

	view := s.View(snap)
	return &view, nil
}

// Get возвращает тур с производными полями на текущий момент.
func (s *Service) Get(ctx context.Context, id string) (*models.TourView, error) {
	const op = "tour.Get"
	snap, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view := s.View(*snap)
	return &view, nil
}

// List возвращает страницу туров, ближайшие по дате первыми.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.TourView, error) {
	const op = "tour.List"
	snaps, err := s.repo.ListTourSnapshots(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	views := make([]models.TourView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, s.View(snap))
	}
	return views, nil
}

// Join добавляет пользователя в тур. Участнику тура возвращается
// storage.ErrAlreadyJoined до проверки вместимости. Вместимость проверяется
// по свежему числу участников; гонка двух одновременных вступлений допускается.
func (s *Service) Join(ctx context.Context, tourID, userID string) (*models.TourView, error) {
	const op = "tour.Join"
	snap, err := s.snapshot(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	member, err := s.repo.IsParticipant(ctx, tourID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if member {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyJoined)
	}
	count, err := s.repo.CountParticipants(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	decision := capacity.CanJoin(count, snap.Tour.MaxPeople, snap.Tour.ApplicationDeadline, s.now())
	if !decision.Allowed {
		metrics.JoinDenied.WithLabelValues(string(decision.Reason)).Inc()
		return nil, fmt.Errorf("%s: %w", op, &JoinDeniedError{Reason: decision.Reason})
	}

	if err := s.repo.AddParticipant(ctx, tourID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("joined tour", sl.TourID(tourID), sl.UserID(userID))

	s.invalidate(ctx, tourID)
	s.publish(ctx, models.ChangeInsert, models.TableParticipants, models.Participant{
		TourID:   tourID,
		UserID:   userID,
		JoinedAt: s.now().UTC(),
	})

	snap.Participants = count + 1
	view := s.View(*snap)
	return &view, nil
}

// Leave удаляет пользователя из участников тура.
func (s *Service) Leave(ctx context.Context, tourID, userID string) error {
	const op = "tour.Leave"
	if err := s.repo.RemoveParticipant(ctx, tourID, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("left tour", sl.TourID(tourID), sl.UserID(userID))

	s.invalidate(ctx, tourID)
	s.publish(ctx, models.ChangeDelete, models.TableParticipants, models.Participant{TourID: tourID, UserID: userID})
	return nil
}

// Participants возвращает участников существующего тура.
func (s *Service) Participants(ctx context.Context, tourID string) ([]models.Participant, error) {
	const op = "tour.Participants"
	if _, err := s.snapshot(ctx, tourID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListParticipants(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// View вычисляет производные поля тура на текущий момент.
func (s *Service) View(snap models.TourSnapshot) models.TourView {
	now := s.now()
	t := snap.Tour
	view := models.TourView{
		Tour:         t,
		Participants: snap.Participants,
		Remaining:    capacity.Remaining(snap.Participants, t.MaxPeople),
		Status:       schedule.Classify(t.Start, t.End, now),
		DateRange:    schedule.FormatDateRange(t.Start, t.End, s.loc),
		Join:         capacity.CanJoin(snap.Participants, t.MaxPeople, t.ApplicationDeadline, now),
	}
	if t.ApplicationDeadline != nil {
		view.Countdown = schedule.Countdown(*t.ApplicationDeadline, now)
	}
	return view
}

// Invalidate сбрасывает снапшот тура в кеше.
func (s *Service) Invalidate(ctx context.Context, tourID string) error {
	const op = "tour.Invalidate"
	if err := s.cache.Invalidate(ctx, cache.TourKey(tourID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) snapshot(ctx context.Context, id string) (*models.TourSnapshot, error) {
	var cached models.TourSnapshot
	found, err := s.cache.Get(ctx, cache.TourKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read tour from cache", sl.TourID(id), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	snap, err := s.repo.GetTourSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(ctx, *snap)
	return snap, nil
}

func (s *Service) storeSnapshot(ctx context.Context, snap models.TourSnapshot) {
	if err := s.cache.Set(ctx, cache.TourKey(snap.Tour.ID), snap, SnapshotTTL); err != nil {
		s.log.Warn("failed to cache tour", sl.TourID(snap.Tour.ID), sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, tourID string) {
	if err := s.Invalidate(ctx, tourID); err != nil {
		s.log.Warn("failed to invalidate tour", sl.TourID(tourID), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, changeType, table string, entity any) {
	if s.pub == nil {
		return
	}
	ev, err := models.NewChangeEvent(changeType, table, entity)
	if err == nil {
		err = s.pub.Publish(ctx, rabbitmq.RoutingKey(table, changeType), ev)
	}
	if err != nil {
		metrics.PublishFailures.Inc()
		s.log.Warn("failed to publish change", slog.String("table", table), sl.Err(err))
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
