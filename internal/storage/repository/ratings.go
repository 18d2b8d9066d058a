package repository

import (
	"context"
	"fmt"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

// UpsertRating сохраняет оценку; повторная оценка того же профиля перезаписывает прежнюю.
func (s *Storage) UpsertRating(ctx context.Context, r models.Rating) error {
	const op = "storage.UpsertRating"

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO ratings (rater_id, ratee_id, score, comment)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (rater_id, ratee_id)
		 DO UPDATE SET score = EXCLUDED.score,
		               comment = EXCLUDED.comment,
		               updated_at = NOW()`,
		r.RaterID, r.RateeID, r.Score, r.Comment)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RatingSummary возвращает среднюю оценку профиля и число оценок.
func (s *Storage) RatingSummary(ctx context.Context, rateeID string) (models.RatingSummary, error) {
	const op = "storage.RatingSummary"

	summary := models.RatingSummary{RateeID: rateeID}
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(score), 0)::float8, COUNT(*)
		 FROM ratings WHERE ratee_id = $1`,
		rateeID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}
