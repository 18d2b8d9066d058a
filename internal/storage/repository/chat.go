package repository

import (
	"context"
	"fmt"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

// CreateMessage сохраняет сообщение и возвращает его с присвоенными id и временем.
func (s *Storage) CreateMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	const op = "storage.CreateMessage"

	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO chat_messages (tour_id, user_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		m.TourID, m.UserID, m.Body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMessages возвращает последние limit сообщений тура, старые первыми.
func (s *Storage) ListMessages(ctx context.Context, tourID string, limit int) ([]models.ChatMessage, error) {
	const op = "storage.ListMessages"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, tour_id, user_id, body, created_at FROM (
		     SELECT id, tour_id, user_id, body, created_at
		     FROM chat_messages
		     WHERE tour_id = $1
		     ORDER BY created_at DESC, id DESC
		     LIMIT $2
		 ) last ORDER BY created_at ASC, id ASC`,
		tourID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.TourID, &m.UserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
