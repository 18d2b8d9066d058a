package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

const snapshotQuery = `SELECT t.id, t.creator_id, t.title, t.description, t.location,
			      t.start_at, t.end_at, t.max_people, t.application_deadline, t.created_at,
			      (SELECT COUNT(*) FROM tour_participants p WHERE p.tour_id = t.id)
			  FROM tours t`

func scanSnapshot(row rowScanner) (*models.TourSnapshot, error) {
	var snap models.TourSnapshot
	var start, end, deadline sql.NullTime
	var maxPeople sql.NullInt64
	t := &snap.Tour
	if err := row.Scan(&t.ID, &t.CreatorID, &t.Title, &t.Description, &t.Location,
		&start, &end, &maxPeople, &deadline, &t.CreatedAt, &snap.Participants); err != nil {
		return nil, err
	}
	t.Start = timePtr(start)
	t.End = timePtr(end)
	t.MaxPeople = intPtr(maxPeople)
	t.ApplicationDeadline = timePtr(deadline)
	return &snap, nil
}

// CreateTour сохраняет тур и записывает создателя первым участником
// в одной транзакции.
func (s *Storage) CreateTour(ctx context.Context, t models.Tour) error {
	const op = "storage.CreateTour"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tours (id, creator_id, title, description, location,
		                    start_at, end_at, max_people, application_deadline, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.CreatorID, t.Title, t.Description, t.Location,
		t.Start, t.End, t.MaxPeople, t.ApplicationDeadline, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: insert tour: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tour_participants (tour_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (tour_id, user_id) DO NOTHING`,
		t.ID, t.CreatorID)
	if err != nil {
		return fmt.Errorf("%s: add creator: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTourSnapshot возвращает тур и число его участников.
func (s *Storage) GetTourSnapshot(ctx context.Context, id string) (*models.TourSnapshot, error) {
	const op = "storage.GetTourSnapshot"

	snap, err := scanSnapshot(s.DB.QueryRowContext(ctx, snapshotQuery+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return snap, nil
}

// ListTourSnapshots возвращает туры по дате начала, туры без даты идут в конце.
func (s *Storage) ListTourSnapshots(ctx context.Context, limit, offset int) ([]models.TourSnapshot, error) {
	const op = "storage.ListTourSnapshots"

	rows, err := s.DB.QueryContext(ctx,
		snapshotQuery+` ORDER BY t.start_at ASC NULLS LAST, t.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.TourSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountParticipants возвращает текущее число участников тура.
func (s *Storage) CountParticipants(ctx context.Context, tourID string) (int, error) {
	const op = "storage.CountParticipants"

	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tour_participants WHERE tour_id = $1`, tourID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
