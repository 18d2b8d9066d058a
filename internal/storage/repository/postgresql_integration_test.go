package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetoutdoors/meetoutdoors-api/internal/migrations"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage/pgtest"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(pgtest.Start(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, migrations.Run(s.DB, pgtest.MigrationsPath(t)))
	require.NoError(t, CheckDatabaseReady(context.Background(), s))
	return s
}

func newTour(creator string, maxPeople *int) models.Tour {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	return models.Tour{
		ID:        uuid.NewString(),
		CreatorID: creator,
		Title:     "Ridge walk",
		Start:     &start,
		End:       &end,
		MaxPeople: maxPeople,
		CreatedAt: time.Now().UTC(),
	}
}

func TestStorage_Profiles(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	p := models.Profile{ID: uuid.NewString(), Email: "anna@example.com", FullName: "Anna", TrialStart: &start, TrialEnd: &end}

	created, err := s.CreateProfile(ctx, p)
	require.NoError(t, err)
	assert.True(t, created)

	later := start.AddDate(0, 1, 0)
	again := p
	again.TrialStart = &later
	created, err = s.CreateProfile(ctx, again)
	require.NoError(t, err)
	assert.False(t, created, "trial window must not be re-created")

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TrialStart)
	assert.True(t, start.Equal(*got.TrialStart))
	assert.False(t, got.TrialExpired)

	candidates, err := s.ListTrialCandidates(ctx, start.AddDate(0, 0, 1), 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, p.ID, candidates[0].ID)

	changed, err := s.MarkTrialExpired(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.MarkTrialExpired(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	candidates, err = s.ListTrialCandidates(ctx, start.AddDate(0, 0, 1), 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	require.NoError(t, s.SetPremium(ctx, p.ID))
	got, err = s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)

	_, err = s.GetProfile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.SetPremium(ctx, uuid.NewString()), storage.ErrNotFound)
}

func TestStorage_ToursAndParticipants(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	creator := uuid.NewString()
	maxPeople := 3
	tour := newTour(creator, &maxPeople)
	require.NoError(t, s.CreateTour(ctx, tour))

	snap, err := s.GetTourSnapshot(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ridge walk", snap.Tour.Title)
	assert.Equal(t, 1, snap.Participants, "creator joins automatically")
	require.NotNil(t, snap.Tour.MaxPeople)
	assert.Equal(t, 3, *snap.Tour.MaxPeople)
	assert.Nil(t, snap.Tour.ApplicationDeadline)

	user := uuid.NewString()
	require.NoError(t, s.AddParticipant(ctx, tour.ID, user))
	assert.ErrorIs(t, s.AddParticipant(ctx, tour.ID, user), storage.ErrAlreadyJoined)

	ok, err := s.IsParticipant(ctx, tour.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := s.CountParticipants(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := s.ListParticipants(ctx, tour.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, s.RemoveParticipant(ctx, tour.ID, user))
	assert.ErrorIs(t, s.RemoveParticipant(ctx, tour.ID, user), storage.ErrNotJoined)

	noDates := models.Tour{ID: uuid.NewString(), CreatorID: creator, Title: "Someday", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateTour(ctx, noDates))

	snaps, err := s.ListTourSnapshots(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, tour.ID, snaps[0].Tour.ID, "dated tours first")
	assert.Nil(t, snaps[1].Tour.Start)

	_, err = s.GetTourSnapshot(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_ConcurrentJoinsAreNotSerialised(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	tour := newTour(uuid.NewString(), nil)
	require.NoError(t, s.CreateTour(ctx, tour))

	user := uuid.NewString()
	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.AddParticipant(ctx, tour.ID, user)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrAlreadyJoined)
	}
	assert.Equal(t, 1, succeeded, "the conflict target keeps join idempotent")
}

func TestStorage_ChatAndRatings(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	creator := uuid.NewString()
	tour := newTour(creator, nil)
	require.NoError(t, s.CreateTour(ctx, tour))

	for _, body := range []string{"first", "second", "third"} {
		m, err := s.CreateMessage(ctx, models.ChatMessage{TourID: tour.ID, UserID: creator, Body: body})
		require.NoError(t, err)
		assert.NotZero(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
	}

	msgs, err := s.ListMessages(ctx, tour.ID, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Body)
	assert.Equal(t, "third", msgs[1].Body)

	ratee := uuid.NewString()
	require.NoError(t, s.UpsertRating(ctx, models.Rating{RaterID: creator, RateeID: ratee, Score: 2}))
	require.NoError(t, s.UpsertRating(ctx, models.Rating{RaterID: creator, RateeID: ratee, Score: 4, Comment: "better"}))
	require.NoError(t, s.UpsertRating(ctx, models.Rating{RaterID: uuid.NewString(), RateeID: ratee, Score: 5}))

	summary, err := s.RatingSummary(ctx, ratee)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)

	empty, err := s.RatingSummary(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.Average)
}

func TestStorage_WaitReady(t *testing.T) {
	s, err := New(pgtest.Start(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	err = WaitReady(ctx, s, 2, 10*time.Millisecond)
	assert.ErrorContains(t, err, "required table profiles missing")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, WaitReady(cancelled, s, 5, time.Second), context.Canceled)

	require.NoError(t, migrations.Run(s.DB, pgtest.MigrationsPath(t)))
	assert.NoError(t, WaitReady(ctx, s, 1, time.Millisecond))
}
