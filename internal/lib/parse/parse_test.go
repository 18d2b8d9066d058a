package parse

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

func TestTime(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  *time.Time
	}{
		{name: "rfc3339", value: "2024-01-01T00:00:00Z", want: &want},
		{name: "rfc3339 with offset", value: "2024-01-01T03:00:00+03:00", want: &want},
		{name: "time value", value: want, want: &want},
		{name: "unix seconds as json number", value: float64(want.Unix()), want: &want},
		{name: "null", value: nil, want: nil},
		{name: "empty string", value: "", want: nil},
		{name: "garbage", value: "not a date", want: nil},
		{name: "nan", value: math.NaN(), want: nil},
		{name: "bool", value: true, want: nil},
		{name: "unix seconds as int", value: want.Unix(), want: &want},
		{name: "zero timestamp", value: float64(0), want: nil},
		{name: "zero int timestamp", value: 0, want: nil},
		{name: "negative timestamp", value: float64(-86400), want: nil},
		{name: "float beyond int64", value: 1e300, want: nil},
		{name: "timestamp past year 9999", value: float64(253402300800), want: nil},
		{name: "infinity", value: math.Inf(1), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Time(Record{"k": tt.value}, "k")
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}

	assert.Nil(t, Time(Record{}, "missing"))
}

func TestInt(t *testing.T) {
	assert.Nil(t, Int(Record{}, "n"))
	assert.Nil(t, Int(Record{"n": nil}, "n"))
	assert.Nil(t, Int(Record{"n": "ten"}, "n"))
	assert.Nil(t, Int(Record{"n": math.Inf(1)}, "n"))

	got := Int(Record{"n": float64(12)}, "n")
	require.NotNil(t, got)
	assert.Equal(t, 12, *got)

	got = Int(Record{"n": "7"}, "n")
	require.NotNil(t, got)
	assert.Equal(t, 7, *got)
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(Record{"b": true}, "b"))
	assert.True(t, Bool(Record{"b": "true"}, "b"))
	assert.False(t, Bool(Record{"b": "maybe"}, "b"))
	assert.False(t, Bool(Record{}, "b"))
}

func TestProfile_FromJSON(t *testing.T) {
	raw := `{
		"id": "7b0e5c9a-2c4e-4a53-9a52-1f1f2f3f4f5f",
		"email": "anna@example.com",
		"is_premium": false,
		"trial_start": "2024-01-01T00:00:00Z",
		"trial_end": "broken",
		"trial_expired": null
	}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	p := Profile(rec)
	assert.Equal(t, "7b0e5c9a-2c4e-4a53-9a52-1f1f2f3f4f5f", p.ID)
	assert.Equal(t, "anna@example.com", p.Email)
	assert.False(t, p.IsPremium)
	require.NotNil(t, p.TrialStart)
	assert.Equal(t, 2024, p.TrialStart.Year())
	assert.Nil(t, p.TrialEnd)
	assert.False(t, p.TrialExpired)
}

func TestTour_FromJSON(t *testing.T) {
	raw := `{
		"id": "t1",
		"title": "Ridge walk",
		"start_at": "2024-06-01T10:00:00Z",
		"end": "2024-06-01T14:00:00Z",
		"max_people": 12,
		"application_deadline": null
	}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	tour := Tour(rec)
	assert.Equal(t, "t1", tour.ID)
	assert.Equal(t, "Ridge walk", tour.Title)
	require.NotNil(t, tour.Start)
	require.NotNil(t, tour.End)
	require.NotNil(t, tour.MaxPeople)
	assert.Equal(t, 12, *tour.MaxPeople)
	assert.Nil(t, tour.ApplicationDeadline)
}

func TestTourID(t *testing.T) {
	assert.Equal(t, "t1", TourID(models.TableTours, Record{"id": "t1"}))
	assert.Equal(t, "t2", TourID(models.TableParticipants, Record{"tour_id": "t2", "id": "x"}))
	assert.Equal(t, "", TourID(models.TableChatMessages, Record{}))
}

func TestProfile_ZeroTrialStartIsNotStarted(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","trial_start":0,"trial_end":0}`), &rec))

	p := Profile(rec)
	assert.Nil(t, p.TrialStart)
	assert.Nil(t, p.TrialEnd)

	res := entitlement.Evaluate(p.Entitlement(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, entitlement.StateNotStarted, res.State)
	assert.False(t, res.TrialExpired)
}
