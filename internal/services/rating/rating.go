// Package rating оценки участников друг другом.
package rating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/sl"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

var (
	// ErrSelfRating пользователь пытается оценить себя.
	ErrSelfRating = errors.New("cannot rate yourself")
	// ErrInvalidScore оценка вне диапазона 1..5.
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// Repository хранилище оценок.
type Repository interface {
	UpsertRating(ctx context.Context, r models.Rating) error
	RatingSummary(ctx context.Context, rateeID string) (models.RatingSummary, error)
}

// Service сервис оценок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает сервис оценок.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Rate ставит или заменяет оценку rater для ratee и возвращает новую сводку.
func (s *Service) Rate(ctx context.Context, raterID, rateeID string, req models.RateRequest) (models.RatingSummary, error) {
	const op = "rating.Rate"
	if raterID == rateeID {
		return models.RatingSummary{}, fmt.Errorf("%s: %w", op, ErrSelfRating)
	}
	if req.Score < 1 || req.Score > 5 {
		return models.RatingSummary{}, fmt.Errorf("%s: %w", op, ErrInvalidScore)
	}

	err := s.repo.UpsertRating(ctx, models.Rating{
		RaterID: raterID,
		RateeID: rateeID,
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("rating saved", sl.UserID(raterID), slog.String("ratee", rateeID), slog.Int("score", req.Score))

	return s.Summary(ctx, rateeID)
}

// Summary возвращает среднюю оценку и число оценок.
func (s *Service) Summary(ctx context.Context, rateeID string) (models.RatingSummary, error) {
	const op = "rating.Summary"
	sum, err := s.repo.RatingSummary(ctx, rateeID)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}
