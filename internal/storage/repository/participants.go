package repository

import (
	"context"
	"fmt"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

// AddParticipant добавляет пользователя в тур. Повторное вступление
// возвращает storage.ErrAlreadyJoined.
func (s *Storage) AddParticipant(ctx context.Context, tourID, userID string) error {
	const op = "storage.AddParticipant"

	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO tour_participants (tour_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (tour_id, user_id) DO NOTHING`,
		tourID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyJoined)
	}
	return nil
}

// RemoveParticipant удаляет пользователя из тура.
func (s *Storage) RemoveParticipant(ctx context.Context, tourID, userID string) error {
	const op = "storage.RemoveParticipant"

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM tour_participants WHERE tour_id = $1 AND user_id = $2`,
		tourID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotJoined)
	}
	return nil
}

// IsParticipant проверяет, состоит ли пользователь в туре.
func (s *Storage) IsParticipant(ctx context.Context, tourID, userID string) (bool, error) {
	const op = "storage.IsParticipant"

	var ok bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tour_participants WHERE tour_id = $1 AND user_id = $2)`,
		tourID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// ListParticipants возвращает участников тура в порядке вступления.
func (s *Storage) ListParticipants(ctx context.Context, tourID string) ([]models.Participant, error) {
	const op = "storage.ListParticipants"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT p.tour_id, p.user_id, COALESCE(pr.full_name, ''), p.joined_at
		 FROM tour_participants p
		 LEFT JOIN profiles pr ON pr.id = p.user_id
		 WHERE p.tour_id = $1
		 ORDER BY p.joined_at ASC`,
		tourID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.TourID, &p.UserID, &p.FullName, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
