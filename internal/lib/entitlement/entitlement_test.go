package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func TestEvaluate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		profile Profile
		now     time.Time
		want    Result
	}{
		{
			name:    "premium ignores expired trial",
			profile: Profile{IsPremium: true, TrialStart: ptr(start), TrialExpired: true},
			now:     start.AddDate(0, 1, 0),
			want:    Result{IsPremium: true, DaysLeft: PremiumDaysLeft, State: StatePremium},
		},
		{
			name:    "premium without trial",
			profile: Profile{IsPremium: true},
			now:     start,
			want:    Result{IsPremium: true, DaysLeft: PremiumDaysLeft, State: StatePremium},
		},
		{
			name:    "trial not started",
			profile: Profile{},
			now:     start,
			want:    Result{State: StateNotStarted},
		},
		{
			name:    "zero trial start treated as not started",
			profile: Profile{TrialStart: ptr(time.Time{})},
			now:     start,
			want:    Result{State: StateNotStarted},
		},
		{
			name:    "first day",
			profile: Profile{TrialStart: ptr(start)},
			now:     start.Add(time.Hour),
			want:    Result{DaysLeft: 7, State: StateActive},
		},
		{
			name:    "six days in",
			profile: Profile{TrialStart: ptr(start)},
			now:     start.Add(6 * day),
			want:    Result{DaysLeft: 1, State: StateActive},
		},
		{
			name:    "exactly seven days is expired",
			profile: Profile{TrialStart: ptr(start)},
			now:     start.Add(7 * day),
			want:    Result{TrialExpired: true, DaysLeft: 0, ShouldPersistExpiry: true, State: StateExpired},
		},
		{
			name:    "expired and already persisted",
			profile: Profile{TrialStart: ptr(start), TrialExpired: true},
			now:     start.Add(30 * day),
			want:    Result{TrialExpired: true, DaysLeft: 0, State: StateExpired},
		},
		{
			name:    "clock skew before start",
			profile: Profile{TrialStart: ptr(start)},
			now:     start.Add(-2 * time.Hour),
			want:    Result{DaysLeft: 7, State: StateActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.profile, tt.now))
		})
	}
}

func TestEvaluate_PersistsExpiryOnce(t *testing.T) {
	start := mustParse(t, "2024-01-01T00:00:00Z")
	now := mustParse(t, "2024-01-08T00:00:01Z")
	p := Profile{TrialStart: &start}

	first := Evaluate(p, now)
	assert.True(t, first.TrialExpired)
	assert.Equal(t, 0, first.DaysLeft)
	assert.True(t, first.ShouldPersistExpiry)

	p.TrialExpired = true
	second := Evaluate(p, now)
	assert.True(t, second.TrialExpired)
	assert.False(t, second.ShouldPersistExpiry)
}

func TestEvaluate_PremiumForAnyNow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := Profile{IsPremium: true, TrialStart: &start}
	for i := -10; i < 100; i += 3 {
		res := Evaluate(p, start.Add(time.Duration(i)*day))
		assert.True(t, res.IsPremium)
		assert.False(t, res.TrialExpired)
		assert.True(t, res.Allowed())
	}
}

func TestEvaluate_ExpiryIsMonotonic(t *testing.T) {
	start := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	p := Profile{TrialStart: &start}
	seenExpired := false
	for h := 0; h < 24*10; h++ {
		res := Evaluate(p, start.Add(time.Duration(h)*time.Hour))
		if seenExpired {
			assert.True(t, res.TrialExpired, "hour %d", h)
		}
		seenExpired = seenExpired || res.TrialExpired
	}
	assert.True(t, seenExpired)
}

func TestElapsedDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, ElapsedDays(start, start))
	assert.Equal(t, 0, ElapsedDays(start, start.Add(23*time.Hour+59*time.Minute)))
	assert.Equal(t, 1, ElapsedDays(start, start.Add(day)))
	assert.Equal(t, 0, ElapsedDays(start, start.Add(-day)))
}

func TestWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	from, to := Window(start)
	assert.Equal(t, start, from)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), to)
}

func TestResult_Allowed(t *testing.T) {
	assert.True(t, Result{State: StateNotStarted}.Allowed())
	assert.True(t, Result{State: StateActive, DaysLeft: 3}.Allowed())
	assert.False(t, Result{State: StateExpired, TrialExpired: true}.Allowed())
}
