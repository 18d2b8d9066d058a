package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

const profileColumns = `id, email, full_name, is_premium, trial_start, trial_end, trial_expired, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var trialStart, trialEnd sql.NullTime
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.IsPremium,
		&trialStart, &trialEnd, &p.TrialExpired, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.TrialStart = timePtr(trialStart)
	p.TrialEnd = timePtr(trialEnd)
	return &p, nil
}

// CreateProfile сохраняет профиль, если его ещё нет. Возвращает false,
// если профиль уже существовал: окно пробного периода не пересоздаётся.
func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) (bool, error) {
	const op = "storage.CreateProfile"

	query := `INSERT INTO profiles (id, email, full_name, is_premium, trial_start, trial_end, trial_expired)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (id) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query,
		p.ID, p.Email, p.FullName, p.IsPremium, p.TrialStart, p.TrialEnd, p.TrialExpired)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n == 1, nil
}

// GetProfile возвращает профиль по id.
func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// MarkTrialExpired выставляет флаг trial_expired. Повторный вызов ничего
// не меняет и возвращает false.
func (s *Storage) MarkTrialExpired(ctx context.Context, id string) (bool, error) {
	const op = "storage.MarkTrialExpired"

	query := `UPDATE profiles
			  SET trial_expired = TRUE
			  WHERE id = $1 AND trial_expired = FALSE`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n == 1, nil
}

// SetPremium переводит профиль в премиум.
func (s *Storage) SetPremium(ctx context.Context, id string) error {
	const op = "storage.SetPremium"

	res, err := s.DB.ExecContext(ctx, `UPDATE profiles SET is_premium = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ListTrialCandidates возвращает профили без премиума с не выставленным флагом
// истечения, у которых пробный период начался не позже cutoff.
func (s *Storage) ListTrialCandidates(ctx context.Context, cutoff time.Time, limit int) ([]models.Profile, error) {
	const op = "storage.ListTrialCandidates"

	query := `SELECT ` + profileColumns + `
			  FROM profiles
			  WHERE is_premium = FALSE
			    AND trial_expired = FALSE
			    AND trial_start IS NOT NULL
			    AND trial_start <= $1
			  ORDER BY trial_start
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
